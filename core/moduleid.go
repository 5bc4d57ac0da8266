package core

// ModuleId identifies a module by its publishing address and name.
type ModuleId struct {
	Address Address
	Name    string
}

// Encode returns the deterministic "{address}::{module_name}" form used in
// every record that references a module.
func (m ModuleId) Encode() string {
	return m.Address.Hex() + "::" + m.Name
}

// ModuleIdFromRaw canonicalizes a raw module id, failing if the address is
// malformed.
func ModuleIdFromRaw(addr []byte, name string) (ModuleId, error) {
	a, err := AddressFromBytes(addr)
	if err != nil {
		return ModuleId{}, err
	}
	return ModuleId{Address: a, Name: name}, nil
}
