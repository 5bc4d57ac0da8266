// Package testharness implements C9, the fixture-based round-trip
// verification spec §8.2/§8.3 describe: a set of saved raw transactions and
// their expected extracted records, replayed against core.ExtractSingle and
// compared byte-for-byte. Grounded on original_source's
// src/aptos_config/tests.rs (per-scenario fixture pairs) and the
// `create-test-set`/`save-range` CLI commands that produce them.
package testharness

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"aptos-etl/core"
	"aptos-etl/rawtx"
	"aptos-etl/wireformat"
)

// fixtureSet is the on-disk layout spec §6.3 names:
// "{name}_{start}_{end}/{txs,records}/{version}.pb".
func fixtureSet(dir, name string, start, end uint64) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%d_%d", name, start, end))
}

// SaveTransactions writes one raw-transaction fixture file per version
// under "{dir}/{name}_{start}_{end}/txs/{version}.pb", per the save-range
// CLI command (spec §6.1).
func SaveTransactions(dir, name string, start, end uint64, txs []*rawtx.Transaction) error {
	txDir := filepath.Join(fixtureSet(dir, name, start, end), "txs")
	if err := os.MkdirAll(txDir, 0o755); err != nil {
		return fmt.Errorf("testharness: mkdir %s: %w", txDir, err)
	}
	for _, tx := range txs {
		if err := writeFixture(txDir, tx.Version, tx); err != nil {
			return err
		}
	}
	return nil
}

// CreateTestSet writes both the raw-transaction fixtures and their expected
// Records fixtures under "{dir}/{name}_{start}_{end}/{txs,records}/", per
// the create-test-set CLI command (spec §6.1). opts selects which families
// are computed into the expected records, mirroring the options a replay
// run would be given.
func CreateTestSet(dir, name string, start, end uint64, txs []*rawtx.Transaction, opts core.TableOptions, layout string) error {
	if err := SaveTransactions(dir, name, start, end, txs); err != nil {
		return err
	}
	recordsDir := filepath.Join(fixtureSet(dir, name, start, end), "records")
	if err := os.MkdirAll(recordsDir, 0o755); err != nil {
		return fmt.Errorf("testharness: mkdir %s: %w", recordsDir, err)
	}
	for _, tx := range txs {
		records, err := core.ExtractSingle(tx, opts, layout)
		if err != nil {
			return fmt.Errorf("testharness: extract version %d: %w", tx.Version, err)
		}
		if err := writeFixture(recordsDir, tx.Version, &records); err != nil {
			return err
		}
	}
	return nil
}

// LoadTransactions reads every "{version}.pb" file under
// "{dir}/{name}_{start}_{end}/txs/" back into raw transactions, keyed by
// version.
func LoadTransactions(dir, name string, start, end uint64) (map[uint64]*rawtx.Transaction, error) {
	txDir := filepath.Join(fixtureSet(dir, name, start, end), "txs")
	entries, err := os.ReadDir(txDir)
	if err != nil {
		return nil, fmt.Errorf("testharness: read %s: %w", txDir, err)
	}
	out := make(map[uint64]*rawtx.Transaction, len(entries))
	for _, e := range entries {
		version, err := versionFromFixtureName(e.Name())
		if err != nil {
			return nil, err
		}
		var tx rawtx.Transaction
		if err := readFixture(txDir, version, &tx); err != nil {
			return nil, err
		}
		out[version] = &tx
	}
	return out, nil
}

// LoadRecords reads every "{version}.pb" file under
// "{dir}/{name}_{start}_{end}/records/" back into Records, keyed by
// version.
func LoadRecords(dir, name string, start, end uint64) (map[uint64]core.Records, error) {
	recordsDir := filepath.Join(fixtureSet(dir, name, start, end), "records")
	entries, err := os.ReadDir(recordsDir)
	if err != nil {
		return nil, fmt.Errorf("testharness: read %s: %w", recordsDir, err)
	}
	out := make(map[uint64]core.Records, len(entries))
	for _, e := range entries {
		version, err := versionFromFixtureName(e.Name())
		if err != nil {
			return nil, err
		}
		var records core.Records
		if err := readFixture(recordsDir, version, &records); err != nil {
			return nil, err
		}
		out[version] = records
	}
	return out, nil
}

// Replay runs core.ExtractSingle against every saved transaction fixture
// and reports any version whose recomputed Records mismatch the saved
// expected Records, per spec §8.2's fixture-replay law.
func Replay(dir, name string, start, end uint64, opts core.TableOptions, layout string) ([]Mismatch, error) {
	txs, err := LoadTransactions(dir, name, start, end)
	if err != nil {
		return nil, err
	}
	want, err := LoadRecords(dir, name, start, end)
	if err != nil {
		return nil, err
	}

	var mismatches []Mismatch
	for version, tx := range txs {
		got, err := core.ExtractSingle(tx, opts, layout)
		if err != nil {
			mismatches = append(mismatches, Mismatch{Version: version, Err: err})
			continue
		}
		expected, ok := want[version]
		if !ok {
			mismatches = append(mismatches, Mismatch{Version: version, Err: fmt.Errorf("testharness: no expected records fixture for version %d", version)})
			continue
		}
		if !recordsEqual(got, expected) {
			mismatches = append(mismatches, Mismatch{Version: version, Got: got, Want: expected})
		}
	}
	return mismatches, nil
}

// Mismatch reports a single fixture-replay failure: either an extraction
// error or a Got/Want Records divergence.
type Mismatch struct {
	Version uint64
	Err     error
	Got     core.Records
	Want    core.Records
}

// recordsEqual compares two Records bundles field-for-field. reflect.DeepEqual
// is sufficient here since Records holds only value types and simple
// pointer-to-scalar optionals, never cyclic or unexported state.
func recordsEqual(a, b core.Records) bool {
	return reflect.DeepEqual(a, b)
}

func writeFixture(dir string, version uint64, v any) error {
	path := filepath.Join(dir, fmt.Sprintf("%d.pb", version))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("testharness: create %s: %w", path, err)
	}
	defer f.Close()
	if err := wireformat.WriteDelimited(f, v); err != nil {
		return fmt.Errorf("testharness: write %s: %w", path, err)
	}
	return nil
}

func readFixture(dir string, version uint64, v any) error {
	path := filepath.Join(dir, fmt.Sprintf("%d.pb", version))
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("testharness: open %s: %w", path, err)
	}
	defer f.Close()
	if err := wireformat.ReadDelimited(f, v); err != nil {
		return fmt.Errorf("testharness: read %s: %w", path, err)
	}
	return nil
}

func versionFromFixtureName(name string) (uint64, error) {
	var version uint64
	if _, err := fmt.Sscanf(name, "%d.pb", &version); err != nil {
		return 0, fmt.Errorf("testharness: malformed fixture file name %q: %w", name, err)
	}
	return version, nil
}
