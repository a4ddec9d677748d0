// Package common holds the shared constants and error taxonomy used by
// pkg/crypto, pkg/proof and pkg/core.
//
// It is an internal package: nothing here is meant to be imported
// outside this module.
package common
