package playercam

type HostBuilder struct {
	clock   Clock
	modules []Module
}

func NewHostBuilder() *HostBuilder {
	return &HostBuilder{clock: SystemClock{}}
}

func (b *HostBuilder) UseClock(clock Clock) *HostBuilder {
	b.clock = clock
	return b
}

func (b *HostBuilder) UseModule(modules ...Module) *HostBuilder {
	b.modules = append(b.modules, modules...)

	return b
}

// Build creates the host and installs the modules in the order they were
// added.
func (b *HostBuilder) Build() *Host {
	host := newHost(b.clock)

	for _, module := range b.modules {
		module.Install(host)
	}

	return host
}
