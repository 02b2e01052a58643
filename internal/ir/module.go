package ir

// Module is the top-level unit the core borrows mutably for the duration
// of optimization; the driver never owns or outlives it.
type Module struct {
	Name      string
	Functions []*Function
}

// NewModule creates an empty module.
func NewModule(name string) *Module {
	return &Module{Name: name}
}

// AddFunction appends fn to the module.
func (m *Module) AddFunction(fn *Function) {
	m.Functions = append(m.Functions, fn)
}
