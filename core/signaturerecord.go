package core

// Signature is the output form of a single SignatureSubRecord, after its
// deferred build type and signer have been resolved.
type Signature struct {
	Envelope
	SignatureIndex int
	Threshold      *uint32
	IsSecondary    *bool
	IsFeePayer     *bool
	IsSender       *bool
	Signature      *SigValue
	PublicKey      PublicKeyValue
	BuildType      string
	Signer         Address
}

// BuildSignatureRecords resolves each finalized sub-record's deferred
// build type and assigns the sequential signature_index per spec §8.1
// invariant 6.
func BuildSignatureRecords(env Envelope, subrecords []SignatureSubRecord) ([]Signature, error) {
	out := make([]Signature, len(subrecords))
	for i, sr := range subrecords {
		buildType, err := sr.BuildType.Extract()
		if err != nil {
			return nil, err
		}
		signer, err := sr.Signer.Extract()
		if err != nil {
			return nil, err
		}
		out[i] = Signature{
			Envelope:       env,
			SignatureIndex: i,
			Threshold:      sr.Threshold,
			IsSecondary:    sr.IsSecondary,
			IsFeePayer:     sr.IsFeePayer,
			IsSender:       sr.IsSender,
			Signature:      sr.Signature,
			PublicKey:      sr.PublicKey,
			BuildType:      buildType,
			Signer:         signer,
		}
	}
	return out, nil
}
