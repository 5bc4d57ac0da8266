package core

import (
	"testing"

	"aptos-etl/rawtx"
)

func TestDecomposeEd25519(t *testing.T) {
	raw := &rawtx.TransactionSignature{
		Type:    rawtx.SignatureEd25519,
		Ed25519: &rawtx.Ed25519Signature{PublicKey: []byte{0xAA}, Signature: []byte{0xBB}},
	}
	subs, err := DecomposeTransactionSignature(raw)
	if err != nil {
		t.Fatalf("DecomposeTransactionSignature failed: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("got %d sub-records, want 1", len(subs))
	}
	bt, err := subs[0].BuildType.Extract()
	if err != nil || bt != "ED25519" {
		t.Fatalf("BuildType = %q, %v; want ED25519, nil", bt, err)
	}
	sender, _ := AddressFromHex("0x10")
	finalized, err := FinalizeSignatures(subs, sender)
	if err != nil {
		t.Fatalf("FinalizeSignatures failed: %v", err)
	}
	signer, err := finalized[0].Signer.Extract()
	if err != nil || signer != sender {
		t.Fatalf("Signer = %v, %v; want %v, nil", signer, err, sender)
	}
}

// TestDecomposeMultiEd25519WithGap mirrors spec §8.3 scenario 3.
func TestDecomposeMultiEd25519WithGap(t *testing.T) {
	raw := &rawtx.TransactionSignature{
		Type: rawtx.SignatureMultiEd25519,
		MultiEd25519: &rawtx.MultiEd25519Signature{
			PublicKeys:       [][]byte{{0x01}, {0x02}, {0x03}},
			Signatures:       [][]byte{{0xAB}, {0xCD}},
			Threshold:        2,
			PublicKeyIndices: []uint32{0, 2},
		},
	}
	subs, err := DecomposeTransactionSignature(raw)
	if err != nil {
		t.Fatalf("DecomposeTransactionSignature failed: %v", err)
	}
	if len(subs) != 3 {
		t.Fatalf("got %d sub-records, want 3", len(subs))
	}
	if subs[1].Signature != nil {
		t.Fatalf("pubkey index 1 expected no signature, got %+v", subs[1].Signature)
	}
	for i, sr := range subs {
		if sr.Threshold == nil || *sr.Threshold != 2 {
			t.Fatalf("sub-record %d threshold = %v, want 2", i, sr.Threshold)
		}
	}
}

func TestDecomposeMultiEd25519RejectsLengthMismatch(t *testing.T) {
	raw := &rawtx.TransactionSignature{
		Type: rawtx.SignatureMultiEd25519,
		MultiEd25519: &rawtx.MultiEd25519Signature{
			PublicKeys:       [][]byte{{1}, {2}},
			Signatures:       [][]byte{{1}},
			PublicKeyIndices: []uint32{0, 1},
		},
	}
	if _, err := DecomposeTransactionSignature(raw); err == nil {
		t.Fatalf("expected MultiEd25519LengthMismatch")
	}
}

func TestDecomposeMultiEd25519RejectsIndexCollision(t *testing.T) {
	raw := &rawtx.TransactionSignature{
		Type: rawtx.SignatureMultiEd25519,
		MultiEd25519: &rawtx.MultiEd25519Signature{
			PublicKeys:       [][]byte{{1}, {2}},
			Signatures:       [][]byte{{1}, {2}},
			PublicKeyIndices: []uint32{0, 0},
		},
	}
	if _, err := DecomposeTransactionSignature(raw); err == nil {
		t.Fatalf("expected MultiEd25519MultiplePubkeyIndexMatch")
	}
}

// TestDecomposeFeePayer mirrors spec §8.3 scenario 4.
func TestDecomposeFeePayer(t *testing.T) {
	feePayerAddr := make([]byte, 32)
	feePayerAddr[31] = 0xFE
	secondaryAddr := make([]byte, 32)
	secondaryAddr[31] = 0x77

	sign := func() *rawtx.AccountSignature {
		return &rawtx.AccountSignature{
			Type:    rawtx.AccountSignatureEd25519,
			Ed25519: &rawtx.Ed25519Signature{PublicKey: []byte{1}, Signature: []byte{2}},
		}
	}

	raw := &rawtx.TransactionSignature{
		Type: rawtx.SignatureFeePayer,
		FeePayer: &rawtx.FeePayerSignature{
			Sender:                   sign(),
			SecondarySignerAddresses: [][]byte{secondaryAddr},
			SecondarySigners:         []*rawtx.AccountSignature{sign()},
			FeePayerAddress:          feePayerAddr,
			FeePayerSigner:           sign(),
		},
	}
	subs, err := DecomposeTransactionSignature(raw)
	if err != nil {
		t.Fatalf("DecomposeTransactionSignature failed: %v", err)
	}
	if len(subs) != 3 {
		t.Fatalf("got %d sub-records, want 3", len(subs))
	}

	sender := subs[0]
	if sender.IsSender == nil || !*sender.IsSender || sender.IsFeePayer == nil || *sender.IsFeePayer {
		t.Fatalf("sender sub-record flags wrong: %+v", sender)
	}

	feePayer := subs[1]
	if feePayer.IsFeePayer == nil || !*feePayer.IsFeePayer {
		t.Fatalf("fee-payer sub-record flags wrong: %+v", feePayer)
	}
	signer, err := feePayer.Signer.Extract()
	if err != nil {
		t.Fatalf("fee-payer signer extract failed: %v", err)
	}
	wantAddr, _ := AddressFromBytes(feePayerAddr)
	if signer != wantAddr {
		t.Fatalf("fee-payer signer = %v, want %v", signer.Hex(), wantAddr.Hex())
	}

	secondary := subs[2]
	if secondary.IsSecondary == nil || !*secondary.IsSecondary {
		t.Fatalf("secondary sub-record flags wrong: %+v", secondary)
	}

	for i, sr := range subs {
		bt, err := sr.BuildType.Extract()
		if err != nil || bt != "FEE_PAYER" {
			t.Fatalf("sub-record %d BuildType = %q, %v; want FEE_PAYER, nil", i, bt, err)
		}
	}
}

func TestDecomposeSingleSenderWrapsSingleKey(t *testing.T) {
	raw := &rawtx.TransactionSignature{
		Type: rawtx.SignatureSingleSender,
		SingleSender: &rawtx.SingleSender{
			Sender: &rawtx.AccountSignature{
				Type: rawtx.AccountSignatureSingleKey,
				SingleKeySignature: &rawtx.SingleKeySignature{
					PublicKey: &rawtx.AnyPublicKey{Type: rawtx.AnyPublicKeyEd25519, PublicKey: []byte{1}},
					Signature: &rawtx.AnySignature{Type: rawtx.AnySignatureEd25519, Signature: []byte{2}},
				},
			},
		},
	}
	subs, err := DecomposeTransactionSignature(raw)
	if err != nil {
		t.Fatalf("DecomposeTransactionSignature failed: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("got %d sub-records, want 1", len(subs))
	}
	bt, err := subs[0].BuildType.Extract()
	if err != nil || bt != "SINGLE_SENDER" {
		t.Fatalf("BuildType = %q, %v; want SINGLE_SENDER, nil", bt, err)
	}
}

func TestDecomposeRejectsUnspecified(t *testing.T) {
	if _, err := DecomposeTransactionSignature(&rawtx.TransactionSignature{Type: rawtx.SignatureUnspecified}); err == nil {
		t.Fatalf("expected error for unspecified signature type")
	}
}
