//go:build opencl

package ocean

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"

	"oceansandbox/internal/params"
)

// openCLFieldSolver runs the SWE step as two kernels: every height from the
// previous velocities, then every velocity from the new heights.
type openCLFieldSolver struct {
	context        *cl.Context
	queue          *cl.CommandQueue
	program        *cl.Program
	heightKernel   *cl.Kernel
	velocityKernel *cl.Kernel
	heightBuf      *cl.MemObject
	velocityBuf    *cl.MemObject
	deviceName     string
}

const sweKernelSource = `__kernel void swe_height(
    const int total,
    const float factor_h,
    __global float* height,
    __global const float* velocity)
{
    int i = get_global_id(0);
    if (i >= total) {
        return;
    }
    height[i] -= height[i] * (velocity[i + 1] - velocity[i]) * factor_h;
}

__kernel void swe_velocity(
    const int total,
    const float factor_v,
    __global const float* height,
    __global float* velocity)
{
    int i = get_global_id(0) + 1;
    if (i >= total) {
        return;
    }
    velocity[i] += (height[i - 1] - height[i]) * factor_v;
}`

func newOpenCLFieldSolver() (*openCLFieldSolver, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	if len(platforms) == 0 {
		return nil, errors.New("no OpenCL platforms available")
	}
	device := pickDevice(platforms, cl.DeviceTypeGPU)
	if device == nil {
		device = pickDevice(platforms, cl.DeviceTypeCPU)
	}
	if device == nil {
		return nil, errors.New("no suitable OpenCL devices found")
	}

	s := &openCLFieldSolver{deviceName: device.Name()}
	if err := s.init(device); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func pickDevice(platforms []*cl.Platform, kind cl.DeviceType) *cl.Device {
	for _, p := range platforms {
		devices, err := p.GetDevices(kind)
		if err != nil && err != cl.ErrDeviceNotFound {
			continue
		}
		if len(devices) > 0 {
			return devices[0]
		}
	}
	return nil
}

// init builds the program and buffers. On error the partially built solver
// is released by Close.
func (s *openCLFieldSolver) init(device *cl.Device) error {
	var err error
	if s.context, err = cl.CreateContext([]*cl.Device{device}); err != nil {
		return fmt.Errorf("creating OpenCL context: %w", err)
	}
	if s.queue, err = s.context.CreateCommandQueue(device, 0); err != nil {
		return fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	if s.program, err = s.context.CreateProgramWithSource([]string{sweKernelSource}); err != nil {
		return fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err := s.program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		if buildErr, ok := err.(cl.BuildError); ok {
			return fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return fmt.Errorf("building OpenCL program: %w", err)
	}
	if s.heightKernel, err = s.program.CreateKernel("swe_height"); err != nil {
		return fmt.Errorf("creating height kernel: %w", err)
	}
	if s.velocityKernel, err = s.program.CreateKernel("swe_velocity"); err != nil {
		return fmt.Errorf("creating velocity kernel: %w", err)
	}

	byteSize := (SWETotalSamples + 1) * int(unsafe.Sizeof(float32(0)))
	if s.heightBuf, err = s.context.CreateEmptyBuffer(cl.MemReadWrite, byteSize); err != nil {
		return fmt.Errorf("allocating height buffer: %w", err)
	}
	if s.velocityBuf, err = s.context.CreateEmptyBuffer(cl.MemReadWrite, byteSize); err != nil {
		return fmt.Errorf("allocating velocity buffer: %w", err)
	}

	const dt = params.SimulationStepTimeDuration
	if err := s.heightKernel.SetArgs(int32(SWETotalSamples), float32(dt/Dx), s.heightBuf, s.velocityBuf); err != nil {
		return fmt.Errorf("setting height kernel arguments: %w", err)
	}
	if err := s.velocityKernel.SetArgs(int32(SWETotalSamples), float32(params.GravityMagnitude*dt/Dx), s.heightBuf, s.velocityBuf); err != nil {
		return fmt.Errorf("setting velocity kernel arguments: %w", err)
	}
	return nil
}

// Step uploads both fields, runs the two passes and reads the fields back.
// Host buffers stay authoritative because wave machines and delta
// injection write heights between steps.
func (s *openCLFieldSolver) Step(height, velocity []float32) error {
	if len(height) != SWETotalSamples+1 || len(velocity) != SWETotalSamples+1 {
		return fmt.Errorf("unexpected field buffer size %d/%d", len(height), len(velocity))
	}
	if _, err := s.queue.EnqueueWriteBufferFloat32(s.heightBuf, false, 0, height, nil); err != nil {
		return fmt.Errorf("writing height buffer: %w", err)
	}
	if _, err := s.queue.EnqueueWriteBufferFloat32(s.velocityBuf, false, 0, velocity, nil); err != nil {
		return fmt.Errorf("writing velocity buffer: %w", err)
	}
	if _, err := s.queue.EnqueueNDRangeKernel(s.heightKernel, nil, []int{SWETotalSamples}, nil, nil); err != nil {
		return fmt.Errorf("enqueueing height kernel: %w", err)
	}
	if _, err := s.queue.EnqueueNDRangeKernel(s.velocityKernel, nil, []int{SWETotalSamples - 1}, nil, nil); err != nil {
		return fmt.Errorf("enqueueing velocity kernel: %w", err)
	}
	if _, err := s.queue.EnqueueReadBufferFloat32(s.heightBuf, true, 0, height, nil); err != nil {
		return fmt.Errorf("reading height buffer: %w", err)
	}
	if _, err := s.queue.EnqueueReadBufferFloat32(s.velocityBuf, true, 0, velocity, nil); err != nil {
		return fmt.Errorf("reading velocity buffer: %w", err)
	}
	return nil
}

func (s *openCLFieldSolver) Name() string {
	return "OpenCL " + s.deviceName
}

func (s *openCLFieldSolver) Close() {
	if s.velocityBuf != nil {
		s.velocityBuf.Release()
		s.velocityBuf = nil
	}
	if s.heightBuf != nil {
		s.heightBuf.Release()
		s.heightBuf = nil
	}
	if s.velocityKernel != nil {
		s.velocityKernel.Release()
		s.velocityKernel = nil
	}
	if s.heightKernel != nil {
		s.heightKernel.Release()
		s.heightKernel = nil
	}
	if s.program != nil {
		s.program.Release()
		s.program = nil
	}
	if s.queue != nil {
		s.queue.Release()
		s.queue = nil
	}
	if s.context != nil {
		s.context.Release()
		s.context = nil
	}
}
