//go:build js && wasm

// Command wasm exposes the PS signature scheme's Keygen/Sign/Verify and
// selective-disclosure proof operations to a JS host via syscall/js.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"syscall/js"

	"github.com/anupsv/ps-signatures/pkg/core"
)

func main() {
	Initialize()
	select {}
}

// Initialize registers the PSSig global on the JS host.
func Initialize() {
	js.Global().Set("PSSig", js.ValueOf(
		map[string]interface{}{
			"version":         js.FuncOf(Version),
			"generateKeyPair": js.FuncOf(GenerateKeyPair),
			"sign":            js.FuncOf(Sign),
			"verify":          js.FuncOf(Verify),
			"createProof":     js.FuncOf(CreateProof),
			"verifyProof":     js.FuncOf(VerifyProof),
		},
	))
}

// Version returns library identification, for host-side compatibility checks.
func Version(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(map[string]interface{}{
		"version": "1.0.0",
		"scheme":  "Pointcheval-Sanders short randomizable signatures",
	})
}

func defaultParamsOrPanic() *core.Params {
	params, err := core.DefaultParams()
	if err != nil {
		panic(err)
	}
	return params
}

// GenerateKeyPair generates a (Sigkey, Verkey) pair for the given
// message count (args[0], default 5) under the module's default
// domain label.
func GenerateKeyPair(this js.Value, args []js.Value) interface{} {
	messageCount := 5
	if len(args) > 0 && args[0].Type() == js.TypeNumber {
		messageCount = args[0].Int()
	}

	params := defaultParamsOrPanic()
	sk, vk, err := core.Keygen(messageCount, params, rand.Reader)
	if err != nil {
		return errorResponse(fmt.Sprintf("failed to generate key pair: %v", err))
	}

	skBytes, err := sk.MarshalBinary()
	if err != nil {
		return errorResponse(fmt.Sprintf("failed to serialize private key: %v", err))
	}
	vkBytes, err := vk.MarshalBinary()
	if err != nil {
		return errorResponse(fmt.Sprintf("failed to serialize public key: %v", err))
	}

	return js.ValueOf(map[string]interface{}{
		"success":      true,
		"privateKey":   hex.EncodeToString(skBytes),
		"publicKey":    hex.EncodeToString(vkBytes),
		"messageCount": messageCount,
	})
}

func jsStringArrayToMessages(v js.Value) []*big.Int {
	messages := make([]*big.Int, v.Length())
	for i := 0; i < v.Length(); i++ {
		messages[i] = core.MessageFromString(v.Index(i).String())
	}
	return messages
}

// Sign produces a signature over args: privateKeyHex, messages (array
// of strings).
func Sign(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResponse("sign requires privateKey and messages")
	}

	skBytes, err := hex.DecodeString(args[0].String())
	if err != nil {
		return errorResponse(fmt.Sprintf("invalid private key encoding: %v", err))
	}
	var sk core.Sigkey
	if err := sk.UnmarshalBinary(skBytes); err != nil {
		return errorResponse(fmt.Sprintf("failed to deserialize private key: %v", err))
	}

	if args[1].Type() != js.TypeObject || args[1].Length() == 0 {
		return errorResponse("messages must be a non-empty array")
	}
	messages := jsStringArrayToMessages(args[1])

	params := defaultParamsOrPanic()
	sig, err := core.Sign(&sk, params, messages, rand.Reader)
	if err != nil {
		return errorResponse(fmt.Sprintf("failed to create signature: %v", err))
	}

	sigBytes, err := sig.MarshalBinary()
	if err != nil {
		return errorResponse(fmt.Sprintf("failed to serialize signature: %v", err))
	}

	return js.ValueOf(map[string]interface{}{
		"success":   true,
		"signature": hex.EncodeToString(sigBytes),
	})
}

// Verify checks a signature over args: publicKeyHex, signatureHex, messages.
func Verify(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return errorResponse("verify requires publicKey, signature, and messages")
	}

	vkBytes, err := hex.DecodeString(args[0].String())
	if err != nil {
		return errorResponse(fmt.Sprintf("invalid public key encoding: %v", err))
	}
	var vk core.Verkey
	if err := vk.UnmarshalBinary(vkBytes); err != nil {
		return errorResponse(fmt.Sprintf("failed to deserialize public key: %v", err))
	}

	sigBytes, err := hex.DecodeString(args[1].String())
	if err != nil {
		return errorResponse(fmt.Sprintf("invalid signature encoding: %v", err))
	}
	var sig core.Signature
	if err := sig.UnmarshalBinary(sigBytes); err != nil {
		return errorResponse(fmt.Sprintf("failed to deserialize signature: %v", err))
	}

	if args[2].Type() != js.TypeObject || args[2].Length() == 0 {
		return errorResponse("messages must be a non-empty array")
	}
	messages := jsStringArrayToMessages(args[2])

	params := defaultParamsOrPanic()
	ok, err := core.Verify(&vk, params, messages, &sig)
	if err != nil {
		return errorResponse(fmt.Sprintf("verification error: %v", err))
	}
	return js.ValueOf(map[string]interface{}{
		"success": true,
		"valid":   ok,
	})
}

// CreateProof builds a selective-disclosure presentation. args[0] is an
// object with publicKey, signature, messages (string array) and
// disclosedIndices (number array).
func CreateProof(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeObject {
		return errorResponse("createProof requires a request object")
	}
	req := args[0]

	vkBytes, err := hex.DecodeString(req.Get("publicKey").String())
	if err != nil {
		return errorResponse(fmt.Sprintf("invalid public key encoding: %v", err))
	}
	var vk core.Verkey
	if err := vk.UnmarshalBinary(vkBytes); err != nil {
		return errorResponse(fmt.Sprintf("failed to deserialize public key: %v", err))
	}

	sigBytes, err := hex.DecodeString(req.Get("signature").String())
	if err != nil {
		return errorResponse(fmt.Sprintf("invalid signature encoding: %v", err))
	}
	var sig core.Signature
	if err := sig.UnmarshalBinary(sigBytes); err != nil {
		return errorResponse(fmt.Sprintf("failed to deserialize signature: %v", err))
	}

	messagesJS := req.Get("messages")
	if messagesJS.Type() != js.TypeObject || messagesJS.Length() == 0 {
		return errorResponse("messages must be a non-empty array")
	}
	messages := jsStringArrayToMessages(messagesJS)

	indicesJS := req.Get("disclosedIndices")
	disclosedIndices := make([]int, 0)
	if indicesJS.Type() == js.TypeObject {
		disclosedIndices = make([]int, indicesJS.Length())
		for i := 0; i < indicesJS.Length(); i++ {
			disclosedIndices[i] = indicesJS.Index(i).Int()
		}
	}

	params := defaultParamsOrPanic()
	presentation, err := core.NewPresentation(&sig, &vk, params, messages, disclosedIndices, nil, rand.Reader)
	if err != nil {
		return errorResponse(fmt.Sprintf("failed to create proof: %v", err))
	}

	presBytes, err := presentation.MarshalBinary()
	if err != nil {
		return errorResponse(fmt.Sprintf("failed to serialize proof: %v", err))
	}

	disclosedMsgsMap := make(map[string]interface{}, len(presentation.Revealed))
	for i, m := range presentation.Revealed {
		disclosedMsgsMap[fmt.Sprintf("%d", i)] = m.String()
	}

	return js.ValueOf(map[string]interface{}{
		"success":           true,
		"proof":             hex.EncodeToString(presBytes),
		"disclosedMessages": disclosedMsgsMap,
	})
}

// VerifyProof checks a presentation produced by CreateProof. args[0] is
// an object with publicKey and proof.
func VerifyProof(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeObject {
		return errorResponse("verifyProof requires a request object")
	}
	req := args[0]

	vkBytes, err := hex.DecodeString(req.Get("publicKey").String())
	if err != nil {
		return errorResponse(fmt.Sprintf("invalid public key encoding: %v", err))
	}
	var vk core.Verkey
	if err := vk.UnmarshalBinary(vkBytes); err != nil {
		return errorResponse(fmt.Sprintf("failed to deserialize public key: %v", err))
	}

	proofBytes, err := hex.DecodeString(req.Get("proof").String())
	if err != nil {
		return errorResponse(fmt.Sprintf("invalid proof encoding: %v", err))
	}
	var presentation core.Presentation
	if err := presentation.UnmarshalBinary(proofBytes); err != nil {
		return errorResponse(fmt.Sprintf("failed to deserialize proof: %v", err))
	}

	params := defaultParamsOrPanic()
	ok, err := presentation.Verify(&vk, params)
	if err != nil {
		return errorResponse(fmt.Sprintf("verification error: %v", err))
	}
	return js.ValueOf(map[string]interface{}{
		"success":  true,
		"verified": ok,
	})
}

func errorResponse(message string) interface{} {
	return js.ValueOf(map[string]interface{}{
		"success": false,
		"error":   message,
	})
}
