package core

import (
	"aptos-etl/domainerr"
	"aptos-etl/rawtx"
)

// TransactionExtraction is the validated intermediate view of a raw
// transaction, per spec §3.1: its type tag and data variant are confirmed
// to agree, and timestamp/info are confirmed present.
type TransactionExtraction struct {
	Version     uint64
	Epoch       uint64
	BlockHeight uint64
	Timestamp   UnixTimestamp
	TxType      string
	Kind        rawtx.TransactionKind
	Info        *rawtx.TransactionInfo
	Raw         *rawtx.Transaction
}

// ExtractTransaction validates a raw transaction envelope and returns the
// intermediate view used by the rest of the transformation engine.
func ExtractTransaction(raw *rawtx.Transaction) (*TransactionExtraction, error) {
	if raw == nil {
		return nil, &domainerr.TxExtractionError{Detail: "nil transaction"}
	}
	if raw.Timestamp == nil {
		return nil, &domainerr.TxExtractionError{Detail: "missing timestamp"}
	}
	ts, err := TimestampFromRaw(raw.Timestamp)
	if err != nil {
		return nil, err
	}
	if raw.Info == nil {
		return nil, &domainerr.TxExtractionError{Detail: "missing transaction info"}
	}
	txType, err := TxTypeFromRaw(raw.Type)
	if err != nil {
		return nil, err
	}
	switch raw.Type {
	case rawtx.KindBlockMetadata:
		if raw.BlockMetadata == nil {
			return nil, &domainerr.TxExtractionError{Detail: "block metadata type tag without block metadata data"}
		}
	case rawtx.KindGenesis:
		if raw.Genesis == nil {
			return nil, &domainerr.TxExtractionError{Detail: "genesis type tag without genesis data"}
		}
	case rawtx.KindStateCheckpoint:
		if raw.StateCheckpoint == nil {
			return nil, &domainerr.TxExtractionError{Detail: "state checkpoint type tag without state checkpoint data"}
		}
	case rawtx.KindUser:
		if raw.User == nil {
			return nil, &domainerr.TxExtractionError{Detail: "user type tag without user data"}
		}
	case rawtx.KindValidator:
		if raw.Validator == nil {
			return nil, &domainerr.TxExtractionError{Detail: "validator type tag without validator data"}
		}
	case rawtx.KindBlockEpilogue:
		if raw.BlockEpilogue == nil {
			return nil, &domainerr.TxExtractionError{Detail: "block epilogue type tag without block epilogue data"}
		}
	}
	return &TransactionExtraction{
		Version:     raw.Version,
		Epoch:       raw.Epoch,
		BlockHeight: raw.BlockHeight,
		Timestamp:   ts,
		TxType:      txType,
		Kind:        raw.Type,
		Info:        raw.Info,
		Raw:         raw,
	}, nil
}

// userRequest returns the signed request of a user transaction. A missing
// request on a User-tagged transaction is a structural error and is always
// fatal, independent of tx.Info.Success.
func (tx *TransactionExtraction) userRequest() (*rawtx.UserTransactionRequest, error) {
	if tx.Kind != rawtx.KindUser {
		return nil, nil
	}
	if tx.Raw.User.Request == nil {
		return nil, &domainerr.TxExtractionError{Detail: "user transaction missing request"}
	}
	return tx.Raw.User.Request, nil
}

// Events returns the events carried by this transaction, or nil for
// transaction types that carry none.
func (tx *TransactionExtraction) Events() []*rawtx.Event {
	switch tx.Kind {
	case rawtx.KindBlockMetadata:
		return tx.Raw.BlockMetadata.Events
	case rawtx.KindUser:
		return tx.Raw.User.Events
	case rawtx.KindGenesis:
		return tx.Raw.Genesis.Events
	case rawtx.KindValidator:
		return tx.Raw.Validator.Events
	default:
		return nil
	}
}

// Transaction is the Transaction family record, per spec §3.1.
type Transaction struct {
	Envelope
	TxType              string
	GasUsed             uint64
	Success             bool
	VmStatus            string
	StateChangeHash     string
	EventRootHash       string
	AccumulatorRootHash string
	StateCheckpointHash *string
	SequenceNumber      *uint64
	MaxGasAmount        *uint64
	GasUnitPrice        *uint64
	Sender              *string
	NumChanges          ChangesAggregate
	NumEvents           *int
	NumSignatures       *int
	ExpirationTimestamp *string
	Payload             *Payload
	PayloadType         *string
}

func intPtr(n int) *int { return &n }

// BuildTransactionRecord assembles the Transaction record and its
// Signature records (user transactions only) from a validated extraction.
func BuildTransactionRecord(tx *TransactionExtraction, layout string) (Transaction, []Signature, error) {
	agg, err := AggregateChanges(tx.Info.Changes)
	if err != nil {
		return Transaction{}, nil, err
	}
	success := tx.Info.Success

	var (
		sequenceNumber, maxGasAmount, gasUnitPrice *uint64
		envelopeSeq                                *uint64
		sender                                     *string
		expirationTimestamp                        *string
		payload                                    *Payload
		payloadType                                *string
		numSignatures                              *int
		finalizedSigs                              []SignatureSubRecord
	)

	switch tx.Kind {
	case rawtx.KindUser:
		req, err := tx.userRequest()
		if err != nil {
			return Transaction{}, nil, err
		}
		sequenceNumber = &req.SequenceNumber
		maxGasAmount = &req.MaxGasAmount
		gasUnitPrice = &req.GasUnitPrice
		envelopeSeq = &req.SequenceNumber

		senderAddr, sErr := AddressFromBytes(req.Sender)
		if sErr == nil {
			s := senderAddr.Hex()
			sender = &s
		} else if success {
			return Transaction{}, nil, sErr
		}

		if req.ExpirationTimestampSecs == nil {
			if success {
				return Transaction{}, nil, &domainerr.TxExtractionError{Detail: "missing expiration timestamp"}
			}
		} else {
			et, etErr := TimestampFromRaw(req.ExpirationTimestampSecs)
			if etErr == nil {
				var formatted string
				formatted, etErr = et.Format(layout)
				if etErr == nil {
					expirationTimestamp = &formatted
				}
			}
			if etErr != nil && success {
				return Transaction{}, nil, etErr
			}
		}

		if req.Payload == nil {
			if success {
				return Transaction{}, nil, &domainerr.TxPayloadError{Detail: "missing payload"}
			}
		} else {
			p, pErr := PayloadFromRaw(req.Payload)
			if pErr == nil {
				payload = &p
				pt := p.PayloadType
				payloadType = &pt
			} else if success {
				return Transaction{}, nil, pErr
			}
		}

		if req.Signature == nil {
			return Transaction{}, nil, &domainerr.SignatureError{Detail: "user transaction missing signature"}
		}
		subrecords, err := DecomposeTransactionSignature(req.Signature)
		if err != nil {
			return Transaction{}, nil, err
		}
		finalized, err := FinalizeSignatures(subrecords, senderAddr)
		if err != nil {
			return Transaction{}, nil, err
		}
		finalizedSigs = finalized
		numSignatures = intPtr(len(finalized))

	case rawtx.KindGenesis:
		if tx.Raw.Genesis.Payload == nil {
			if success {
				return Transaction{}, nil, &domainerr.TxPayloadError{Detail: "missing genesis payload"}
			}
		} else {
			p, pErr := GenesisPayloadFromRaw(tx.Raw.Genesis.Payload)
			if pErr == nil {
				payload = &p
				pt := p.PayloadType
				payloadType = &pt
			} else if success {
				return Transaction{}, nil, pErr
			}
		}
	}

	var numEvents *int
	if events := tx.Events(); events != nil {
		numEvents = intPtr(len(events))
	}

	env, err := BuildEnvelope(tx.BlockHeight, tx.Timestamp, layout, tx.Version, HashValue(tx.Info.Hash), envelopeSeq)
	if err != nil {
		return Transaction{}, nil, err
	}

	var sigRecords []Signature
	if finalizedSigs != nil {
		sigRecords, err = BuildSignatureRecords(env, finalizedSigs)
		if err != nil {
			return Transaction{}, nil, err
		}
	}

	var stateCheckpointHash *string
	if len(tx.Info.StateCheckpointHash) > 0 {
		s := HashValue(tx.Info.StateCheckpointHash).Encode()
		stateCheckpointHash = &s
	}

	record := Transaction{
		Envelope:            env,
		TxType:              tx.TxType,
		GasUsed:             tx.Info.GasUsed,
		Success:             success,
		VmStatus:            tx.Info.VmStatus,
		StateChangeHash:     HashValue(tx.Info.StateChangeHash).Encode(),
		EventRootHash:       HashValue(tx.Info.EventRootHash).Encode(),
		AccumulatorRootHash: HashValue(tx.Info.AccumulatorRootHash).Encode(),
		StateCheckpointHash: stateCheckpointHash,
		SequenceNumber:      sequenceNumber,
		MaxGasAmount:        maxGasAmount,
		GasUnitPrice:        gasUnitPrice,
		Sender:              sender,
		NumChanges:          agg,
		NumEvents:           numEvents,
		NumSignatures:       numSignatures,
		ExpirationTimestamp: expirationTimestamp,
		Payload:             payload,
		PayloadType:         payloadType,
	}
	return record, sigRecords, nil
}
