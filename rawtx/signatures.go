package rawtx

// Ed25519Signature is a plain Ed25519 public key / signature pair.
type Ed25519Signature struct {
	PublicKey []byte
	Signature []byte // nil for a bare public key with no attached signature
}

// MultiEd25519Signature is a k-of-n Ed25519 signature: signatures[i]
// authenticates public_keys[public_key_indices[i]].
type MultiEd25519Signature struct {
	PublicKeys       [][]byte
	Signatures       [][]byte
	Threshold        uint32
	PublicKeyIndices []uint32
}

// AnyPublicKeyType discriminates the AnyPublicKey oneof used by SingleKey
// and MultiKey account signatures.
type AnyPublicKeyType int32

const (
	AnyPublicKeyUnspecified AnyPublicKeyType = iota
	AnyPublicKeyEd25519
	AnyPublicKeySecp256k1Ecdsa
	AnyPublicKeySecp256r1Ecdsa
	AnyPublicKeyKeyless
)

// AnyPublicKey is a single public key under the "any" key abstraction.
type AnyPublicKey struct {
	Type      AnyPublicKeyType
	PublicKey []byte
}

// AnySignatureType discriminates the AnySignature oneof.
type AnySignatureType int32

const (
	AnySignatureUnspecified AnySignatureType = iota
	AnySignatureEd25519
	AnySignatureSecp256k1Ecdsa
	AnySignatureWebauthn
	AnySignatureKeyless
)

// AnySignature is a single signature under the "any" key abstraction.
type AnySignature struct {
	Type      AnySignatureType
	Signature []byte
}

// SingleKeySignature is an AccountSignature carrying exactly one (key,
// signature) pair of any supported scheme.
type SingleKeySignature struct {
	PublicKey *AnyPublicKey
	Signature *AnySignature
}

// IndexedSignature attaches a signature to a position in a MultiKey
// signature's public key list.
type IndexedSignature struct {
	Index     uint32
	Signature *AnySignature
}

// MultiKeySignature is a k-of-n signature over a heterogeneous set of key
// schemes.
type MultiKeySignature struct {
	PublicKeys         []*AnyPublicKey
	Signatures         []*IndexedSignature
	SignaturesRequired uint32
}

// AccountSignatureType discriminates the AccountSignature oneof.
type AccountSignatureType int32

const (
	AccountSignatureUnspecified AccountSignatureType = iota
	AccountSignatureEd25519
	AccountSignatureMultiEd25519
	AccountSignatureSingleKey
	AccountSignatureMultiKey
)

// AccountSignature is the signature attributable to a single signing
// account, in any of the four supported schemes.
type AccountSignature struct {
	Type               AccountSignatureType
	Ed25519            *Ed25519Signature
	MultiEd25519       *MultiEd25519Signature
	SingleKeySignature *SingleKeySignature
	MultiKeySignature  *MultiKeySignature
}

// SingleSender wraps a single AccountSignature as the top-level
// transaction signature (as opposed to MultiAgent/FeePayer, which compose
// several).
type SingleSender struct {
	Sender *AccountSignature
}

// MultiAgentSignature attributes a transaction to a sender plus one or more
// secondary signers sharing the same effects.
type MultiAgentSignature struct {
	Sender                   *AccountSignature
	SecondarySignerAddresses [][]byte
	SecondarySigners         []*AccountSignature
}

// FeePayerSignature is a MultiAgentSignature plus a distinct fee-paying
// account.
type FeePayerSignature struct {
	Sender                   *AccountSignature
	SecondarySignerAddresses [][]byte
	SecondarySigners         []*AccountSignature
	FeePayerAddress          []byte
	FeePayerSigner           *AccountSignature
}

// SignatureKind discriminates the top-level TransactionSignature oneof.
type SignatureKind int32

const (
	SignatureUnspecified SignatureKind = iota
	SignatureEd25519
	SignatureMultiEd25519
	SignatureMultiAgent
	SignatureSingleSender
	SignatureFeePayer
)

// TransactionSignature is the raw, possibly-nested signature attached to a
// UserTransactionRequest.
type TransactionSignature struct {
	Type         SignatureKind
	Ed25519      *Ed25519Signature
	MultiEd25519 *MultiEd25519Signature
	MultiAgent   *MultiAgentSignature
	SingleSender *SingleSender
	FeePayer     *FeePayerSignature
}
