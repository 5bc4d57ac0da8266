package core

import (
	"aptos-etl/domainerr"
	"aptos-etl/rawtx"
)

// PublicKeyValue is the public-key half of a Signature record: a scheme
// name, its hex-encoded bytes, and (for multi-key schemes) its position.
type PublicKeyValue struct {
	Kind  string
	Value string
	Index *uint32
}

// SigValue is the signature-bytes half of a Signature record.
type SigValue struct {
	Kind  string
	Value string
	Index *uint32
}

// SignatureSubRecord is one flattened row of the signature decomposition
// algorithm (spec §4.4), prior to finalization against the owning
// transaction's sender.
type SignatureSubRecord struct {
	BuildType   Deferred[string]
	PublicKey   PublicKeyValue
	Signature   *SigValue
	Threshold   *uint32
	Signer      Deferred[Address]
	IsSecondary *bool
	IsFeePayer  *bool
	IsSender    *bool
}

func boolPtr(b bool) *bool { return &b }

func u32Ptr(v uint32) *uint32 { return &v }

// DecomposeTransactionSignature lowers a transaction's top-level signature
// into its flat sub-record sequence.
func DecomposeTransactionSignature(raw *rawtx.TransactionSignature) ([]SignatureSubRecord, error) {
	if raw == nil {
		return nil, &domainerr.SignatureError{Detail: "missing signature data"}
	}
	switch raw.Type {
	case rawtx.SignatureEd25519:
		sr, err := fromEd25519(raw.Ed25519)
		if err != nil {
			return nil, err
		}
		return []SignatureSubRecord{sr}, nil
	case rawtx.SignatureMultiEd25519:
		return fromMultiEd25519(raw.MultiEd25519)
	case rawtx.SignatureMultiAgent:
		return fromMultiAgent(raw.MultiAgent)
	case rawtx.SignatureFeePayer:
		return fromFeePayer(raw.FeePayer)
	case rawtx.SignatureSingleSender:
		return fromSingleSender(raw.SingleSender)
	default:
		return nil, &domainerr.SignatureError{Detail: "unspecified signature type"}
	}
}

func fromEd25519(raw *rawtx.Ed25519Signature) (SignatureSubRecord, error) {
	if raw == nil {
		return SignatureSubRecord{}, &domainerr.SignatureError{Detail: "missing ed25519 signature data"}
	}
	sr := SignatureSubRecord{
		BuildType: NewDeferredFallback("ED25519"),
		PublicKey: PublicKeyValue{Kind: "ED25519", Value: HashValue(raw.PublicKey).Encode()},
		Signer:    NewDeferred[Address](),
	}
	if raw.Signature != nil {
		sr.Signature = &SigValue{Kind: "ED25519", Value: HashValue(raw.Signature).Encode()}
	}
	return sr, nil
}

func fromMultiEd25519(raw *rawtx.MultiEd25519Signature) ([]SignatureSubRecord, error) {
	if raw == nil {
		return nil, &domainerr.SignatureError{Detail: "missing multi_ed25519 signature data"}
	}
	if len(raw.Signatures) != len(raw.PublicKeyIndices) {
		return nil, &domainerr.MultiEd25519LengthMismatch{
			NumSignatures: len(raw.Signatures),
			NumIndices:    len(raw.PublicKeyIndices),
		}
	}
	sigByIndex := make(map[uint32]*SigValue, len(raw.Signatures))
	for i, idx := range raw.PublicKeyIndices {
		if _, exists := sigByIndex[idx]; exists {
			return nil, &domainerr.MultiEd25519MultiplePubkeyIndexMatch{Index: int(idx)}
		}
		sigByIndex[idx] = &SigValue{Kind: "ED25519", Value: HashValue(raw.Signatures[i]).Encode(), Index: u32Ptr(idx)}
	}
	threshold := raw.Threshold
	records := make([]SignatureSubRecord, len(raw.PublicKeys))
	for i, pk := range raw.PublicKeys {
		idx := uint32(i)
		records[i] = SignatureSubRecord{
			BuildType: NewDeferredFallback("MULTI_ED25519"),
			PublicKey: PublicKeyValue{Kind: "ED25519", Value: HashValue(pk).Encode(), Index: u32Ptr(idx)},
			Signature: sigByIndex[idx],
			Threshold: &threshold,
			Signer:    NewDeferred[Address](),
		}
	}
	return records, nil
}

func publicKeyKindFromAny(t rawtx.AnyPublicKeyType) (string, error) {
	switch t {
	case rawtx.AnyPublicKeyEd25519:
		return "ED25519", nil
	case rawtx.AnyPublicKeySecp256k1Ecdsa:
		return "SECP256K1_ECDSA", nil
	case rawtx.AnyPublicKeySecp256r1Ecdsa:
		return "SECP256R1_ECDSA", nil
	case rawtx.AnyPublicKeyKeyless:
		return "KEYLESS", nil
	default:
		return "", &domainerr.PublicKeyError{Detail: "unspecified any-public-key type"}
	}
}

func sigKindFromAny(t rawtx.AnySignatureType) (string, error) {
	switch t {
	case rawtx.AnySignatureEd25519:
		return "ED25519", nil
	case rawtx.AnySignatureSecp256k1Ecdsa:
		return "SECP256K1_ECDSA", nil
	case rawtx.AnySignatureWebauthn:
		return "WEBAUTHN", nil
	case rawtx.AnySignatureKeyless:
		return "KEYLESS", nil
	default:
		return "", &domainerr.SigValueError{Detail: "unspecified any-signature type"}
	}
}

func anyPublicKeyValue(raw *rawtx.AnyPublicKey) (PublicKeyValue, error) {
	if raw == nil {
		return PublicKeyValue{}, &domainerr.PublicKeyError{Detail: "missing public key"}
	}
	kind, err := publicKeyKindFromAny(raw.Type)
	if err != nil {
		return PublicKeyValue{}, err
	}
	return PublicKeyValue{Kind: kind, Value: HashValue(raw.PublicKey).Encode()}, nil
}

func anySigValue(raw *rawtx.AnySignature) (SigValue, error) {
	if raw == nil {
		return SigValue{}, &domainerr.SigValueError{Detail: "missing signature"}
	}
	kind, err := sigKindFromAny(raw.Type)
	if err != nil {
		return SigValue{}, err
	}
	return SigValue{Kind: kind, Value: HashValue(raw.Signature).Encode()}, nil
}

func fromSingleKeySignature(raw *rawtx.SingleKeySignature) (SignatureSubRecord, error) {
	if raw == nil || raw.PublicKey == nil {
		return SignatureSubRecord{}, &domainerr.SignatureError{Detail: "single_key signature missing public key"}
	}
	if raw.Signature == nil {
		return SignatureSubRecord{}, &domainerr.SignatureError{Detail: "single_key signature missing signature value"}
	}
	pk, err := anyPublicKeyValue(raw.PublicKey)
	if err != nil {
		return SignatureSubRecord{}, err
	}
	sig, err := anySigValue(raw.Signature)
	if err != nil {
		return SignatureSubRecord{}, err
	}
	return SignatureSubRecord{
		BuildType: NewDeferred[string](),
		PublicKey: pk,
		Signature: &sig,
		Signer:    NewDeferred[Address](),
	}, nil
}

func fromMultiKeySignature(raw *rawtx.MultiKeySignature) ([]SignatureSubRecord, error) {
	if raw == nil {
		return nil, &domainerr.SignatureError{Detail: "missing multi_key signature data"}
	}
	sigByIndex := make(map[uint32]SigValue, len(raw.Signatures))
	for _, is := range raw.Signatures {
		if _, exists := sigByIndex[is.Index]; exists {
			return nil, &domainerr.MultiKeyMultipleSignatureIndexMatch{Index: int(is.Index)}
		}
		sig, err := anySigValue(is.Signature)
		if err != nil {
			return nil, err
		}
		sigByIndex[is.Index] = sig
	}
	threshold := raw.SignaturesRequired
	records := make([]SignatureSubRecord, len(raw.PublicKeys))
	for i, pk := range raw.PublicKeys {
		idx := uint32(i)
		pkv, err := anyPublicKeyValue(pk)
		if err != nil {
			return nil, err
		}
		pkv.Index = u32Ptr(idx)
		var sigPtr *SigValue
		if sig, ok := sigByIndex[idx]; ok {
			sig.Index = u32Ptr(idx)
			sigPtr = &sig
		}
		records[i] = SignatureSubRecord{
			BuildType: NewDeferred[string](),
			PublicKey: pkv,
			Signature: sigPtr,
			Threshold: &threshold,
			Signer:    NewDeferred[Address](),
		}
	}
	return records, nil
}

func decomposeAccountSignature(raw *rawtx.AccountSignature) ([]SignatureSubRecord, error) {
	if raw == nil {
		return nil, &domainerr.SignatureError{Detail: "missing account signature data"}
	}
	switch raw.Type {
	case rawtx.AccountSignatureEd25519:
		sr, err := fromEd25519(raw.Ed25519)
		if err != nil {
			return nil, err
		}
		return []SignatureSubRecord{sr}, nil
	case rawtx.AccountSignatureMultiEd25519:
		return fromMultiEd25519(raw.MultiEd25519)
	case rawtx.AccountSignatureMultiKey:
		return fromMultiKeySignature(raw.MultiKeySignature)
	case rawtx.AccountSignatureSingleKey:
		sr, err := fromSingleKeySignature(raw.SingleKeySignature)
		if err != nil {
			return nil, err
		}
		return []SignatureSubRecord{sr}, nil
	default:
		return nil, &domainerr.SignatureError{Detail: "unspecified account signature type"}
	}
}

func fromMultiAgent(raw *rawtx.MultiAgentSignature) ([]SignatureSubRecord, error) {
	if raw == nil || raw.Sender == nil {
		return nil, &domainerr.SignatureError{Detail: "multi_agent signature missing sender"}
	}
	var out []SignatureSubRecord
	for i, secSig := range raw.SecondarySigners {
		addr, err := AddressFromBytes(raw.SecondarySignerAddresses[i])
		if err != nil {
			return nil, err
		}
		subrecords, err := decomposeAccountSignature(secSig)
		if err != nil {
			return nil, err
		}
		for _, sr := range subrecords {
			sr.BuildType = NewDeferredFallback("MULTI_AGENT")
			sr.Signer = NewPresent(addr)
			sr.IsSecondary = boolPtr(true)
			sr.IsSender = boolPtr(false)
			out = append(out, sr)
		}
	}
	senderRecords, err := decomposeAccountSignature(raw.Sender)
	if err != nil {
		return nil, err
	}
	for _, sr := range senderRecords {
		sr.BuildType = NewDeferredFallback("MULTI_AGENT")
		sr.IsSecondary = boolPtr(false)
		sr.IsSender = boolPtr(true)
		out = append(out, sr)
	}
	return out, nil
}

func fromFeePayer(raw *rawtx.FeePayerSignature) ([]SignatureSubRecord, error) {
	if raw == nil || raw.Sender == nil {
		return nil, &domainerr.SignatureError{Detail: "fee_payer signature missing sender"}
	}
	if raw.FeePayerSigner == nil {
		return nil, &domainerr.SignatureError{Detail: "fee_payer signature missing fee payer"}
	}
	var out []SignatureSubRecord

	senderRecords, err := decomposeAccountSignature(raw.Sender)
	if err != nil {
		return nil, err
	}
	for _, sr := range senderRecords {
		sr.BuildType = NewDeferredFallback("FEE_PAYER")
		sr.IsFeePayer = boolPtr(false)
		sr.IsSecondary = boolPtr(false)
		sr.IsSender = boolPtr(true)
		out = append(out, sr)
	}

	feePayerAddr, err := AddressFromBytes(raw.FeePayerAddress)
	if err != nil {
		return nil, err
	}
	feePayerRecords, err := decomposeAccountSignature(raw.FeePayerSigner)
	if err != nil {
		return nil, err
	}
	for _, sr := range feePayerRecords {
		sr.BuildType = NewDeferredFallback("FEE_PAYER")
		sr.Signer = NewPresent(feePayerAddr)
		sr.IsFeePayer = boolPtr(true)
		sr.IsSecondary = boolPtr(false)
		sr.IsSender = boolPtr(false)
		out = append(out, sr)
	}

	for i, secSig := range raw.SecondarySigners {
		addr, err := AddressFromBytes(raw.SecondarySignerAddresses[i])
		if err != nil {
			return nil, err
		}
		subrecords, err := decomposeAccountSignature(secSig)
		if err != nil {
			return nil, err
		}
		for _, sr := range subrecords {
			sr.BuildType = NewDeferredFallback("FEE_PAYER")
			sr.Signer = NewPresent(addr)
			sr.IsFeePayer = boolPtr(false)
			sr.IsSecondary = boolPtr(true)
			sr.IsSender = boolPtr(false)
			out = append(out, sr)
		}
	}
	return out, nil
}

func fromSingleSender(raw *rawtx.SingleSender) ([]SignatureSubRecord, error) {
	if raw == nil || raw.Sender == nil {
		return nil, &domainerr.SignatureError{Detail: "single_sender missing its inner value"}
	}
	subrecords, err := decomposeAccountSignature(raw.Sender)
	if err != nil {
		return nil, err
	}
	for i := range subrecords {
		subrecords[i].BuildType = NewDeferredFallback("SINGLE_SENDER")
	}
	return subrecords, nil
}

// FinalizeSignatures resolves every sub-record's Deferred signer against the
// transaction sender, per spec §4.4 finalization.
func FinalizeSignatures(subrecords []SignatureSubRecord, sender Address) ([]SignatureSubRecord, error) {
	out := make([]SignatureSubRecord, len(subrecords))
	for i, sr := range subrecords {
		if sr.Signer.IsDeferred() {
			resolved, err := sr.Signer.MakePresent(sender)
			if err != nil {
				return nil, err
			}
			sr.Signer = resolved
		}
		out[i] = sr
	}
	return out, nil
}
