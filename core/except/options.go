package except

import "errors"

// Option is an option configuring a thread of control.
type Option func(cfg *threadConfig) error

type threadConfig struct {
	name        string
	onTerminate func(error)
}

// WithName names the thread in log output.
func WithName(name string) Option {
	return func(cfg *threadConfig) error {
		if name == "" {
			return errors.New("thread name must not be empty")
		}
		cfg.name = name
		return nil
	}
}

// WithTerminateHandler registers fn to be called with the reason before the
// thread panics with *Terminated.
func WithTerminateHandler(fn func(reason error)) Option {
	return func(cfg *threadConfig) error {
		if fn == nil {
			return errors.New("terminate handler must not be nil")
		}
		cfg.onTerminate = fn
		return nil
	}
}
