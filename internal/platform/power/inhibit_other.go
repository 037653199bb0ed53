//go:build !darwin && !linux && !windows

package power

type noopInhibitor struct{}

func newInhibitor(string) Inhibitor {
	return noopInhibitor{}
}

func (noopInhibitor) Start() error { return nil }
func (noopInhibitor) Stop()        {}
