package masker

// Mapping links a placeholder token to the distinct original texts it
// replaced (spec invariant 6: a placeholder may stand in for more than one
// distinct original spelling of the same underlying value).
type Mapping struct {
	Placeholder string   `json:"placeholder"`
	Kind        string   `json:"kind"`
	Originals   []string `json:"originals"`
}
