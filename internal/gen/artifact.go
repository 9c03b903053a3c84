package gen

import "orm-generator/internal/analyze"

// Key identifies an artifact by namespace (package name) and type name.
type Key struct {
	Namespace string
	Name      string
}

// Artifact is the generated source of one model.
type Artifact struct {
	Key  Key
	ID   analyze.TypeID
	Text string
}

// Name returns "{namespace}.{typeName}.generated".
func (a Artifact) Name() string {
	return a.Key.Namespace + "." + a.Key.Name + ".generated"
}

// FileName returns the name of the file the artifact is written to.
func (a Artifact) FileName() string {
	return a.Name() + ".go"
}
