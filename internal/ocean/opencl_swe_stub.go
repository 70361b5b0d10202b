//go:build !opencl

package ocean

import "errors"

type openCLFieldSolver struct{}

func newOpenCLFieldSolver() (*openCLFieldSolver, error) {
	return nil, errors.New("OpenCL support is not enabled; rebuild with -tags opencl")
}

func (s *openCLFieldSolver) Step(height, velocity []float32) error {
	return errors.New("OpenCL solver unavailable")
}

func (s *openCLFieldSolver) Name() string { return "" }

func (s *openCLFieldSolver) Close() {}
