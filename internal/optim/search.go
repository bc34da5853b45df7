package optim

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/optimize"

	"orbitsearch/internal/dynamo"
	"orbitsearch/internal/residual"
	"orbitsearch/internal/spectral"
)

// Status classifies how a search run ended.
type Status int

const (
	Converged Status = iota
	IterationLimit
	SolverFailure
)

func (s Status) String() string {
	switch s {
	case Converged:
		return "converged"
	case IterationLimit:
		return "iteration limit"
	case SolverFailure:
		return "solver failure"
	default:
		return "unknown"
	}
}

// Options configures a search run. The zero value picks L-BFGS with the
// default iteration cap and no trace.
type Options struct {
	// Method selects the descent scheme: "lbfgs" (default), "bfgs", "cg",
	// "gradient" or "nelder-mead".
	Method string

	// Mean is the constant state offset added to the trajectory before the
	// vector field is evaluated. Nil means the origin.
	Mean dynamo.State

	// MaxIterations caps major iterations; 0 means 500.
	MaxIterations int

	// Quiet suppresses the per-iteration progress line on stderr.
	Quiet bool

	// Trace, when non-nil, receives one Snapshot per major iteration.
	Trace *Trace

	// Observer, when non-nil, is called synchronously with every Snapshot
	// recorded into the trace.
	Observer func(Snapshot)
}

// Result is the outcome of a search run.
type Result struct {
	Trajectory spectral.Trajectory
	Freq       float64
	Residual   float64
	Status     Status
	Iterations int
	FuncEvals  int
}

const defaultMaxIterations = 500

// Search minimizes the global residual of sys over the (trajectory,
// frequency) pair, starting from the given guess. The returned result always
// carries the best point found, even when the run hits the iteration cap or
// the line search gives up.
func Search(sys dynamo.System, traj spectral.Trajectory, freq float64, opts Options) (Result, error) {
	mean := opts.Mean
	if mean == nil {
		mean = make(dynamo.State, sys.Dim())
	}

	// Surface shape errors before handing anything to the optimizer.
	if _, err := residual.Global(traj, sys, freq, mean); err != nil {
		return Result{}, fmt.Errorf("initial guess: %w", err)
	}

	modes := traj.ModeCount()
	rec := &traceRecorder{
		trace:    opts.Trace,
		observer: opts.Observer,
		modes:    modes,
		sys:      sys,
		mean:     mean,
		quiet:    opts.Quiet,
	}

	// The Nyquist mode carries no spectral derivative, so the objective is
	// evaluated on the Nyquist-zeroed projection and its gradient vanishes
	// along that direction. The panics are unreachable: shapes were
	// validated above and the optimizer never changes the vector length.
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			tr, f, err := Unpack(x, modes)
			if err != nil {
				panic(err)
			}
			v, err := residual.Global(tr.ZeroNyquist(), sys, f, mean)
			if err != nil {
				panic(err)
			}
			return v
		},
		Grad: func(grad, x []float64) {
			tr, f, err := Unpack(x, modes)
			if err != nil {
				panic(err)
			}
			tr = tr.ZeroNyquist()
			gt, err := residual.GradTrajectory(tr, sys, f, mean)
			if err != nil {
				panic(err)
			}
			gf, err := residual.GradFrequency(tr, sys, f, mean)
			if err != nil {
				panic(err)
			}
			copy(grad, Pack(gt.ZeroNyquist(), gf))
		},
	}

	maxIter := opts.MaxIterations
	if maxIter <= 0 {
		maxIter = defaultMaxIterations
	}
	settings := &optimize.Settings{
		MajorIterations: maxIter,
	}
	if opts.Trace != nil || opts.Observer != nil || !opts.Quiet {
		settings.Recorder = rec
	}

	method, err := methodFor(opts.Method)
	if err != nil {
		return Result{}, err
	}

	res, err := optimize.Minimize(problem, Pack(traj, freq), settings, method)

	out := Result{Status: SolverFailure}
	if res != nil {
		tr, f, uerr := Unpack(res.X, modes)
		if uerr != nil {
			return Result{}, uerr
		}
		out = Result{
			// The residual zeroes the Nyquist row, so those coefficients
			// are flat directions of the objective; strip whatever the
			// seed carried there rather than report it as converged.
			Trajectory: tr.ZeroNyquist(),
			Freq:       f,
			Residual:   res.F,
			Status:     statusFor(res.Status, err),
			Iterations: res.MajorIterations,
			FuncEvals:  res.FuncEvaluations,
		}
	}
	if err != nil && out.Status == SolverFailure {
		return out, fmt.Errorf("minimize: %w", err)
	}
	return out, nil
}

func methodFor(name string) (optimize.Method, error) {
	switch name {
	case "", "lbfgs":
		return &optimize.LBFGS{}, nil
	case "bfgs":
		return &optimize.BFGS{}, nil
	case "cg":
		return &optimize.CG{}, nil
	case "gradient":
		return &optimize.GradientDescent{}, nil
	case "nelder-mead":
		return &optimize.NelderMead{}, nil
	default:
		return nil, fmt.Errorf("unknown method %q", name)
	}
}

func statusFor(s optimize.Status, err error) Status {
	switch s {
	case optimize.IterationLimit, optimize.FunctionEvaluationLimit, optimize.GradientEvaluationLimit:
		return IterationLimit
	case optimize.Failure, optimize.NotTerminated:
		return SolverFailure
	}
	if err != nil {
		return SolverFailure
	}
	return Converged
}

// traceRecorder feeds major-iteration states into a Trace and an optional
// observer callback.
type traceRecorder struct {
	trace    *Trace
	observer func(Snapshot)
	modes    int
	sys      dynamo.System
	mean     dynamo.State
	quiet    bool
	iter     int
}

func (r *traceRecorder) Init() error {
	r.iter = 0
	return nil
}

func (r *traceRecorder) Record(loc *optimize.Location, op optimize.Operation, stats *optimize.Stats) error {
	if op&optimize.MajorIteration == 0 {
		return nil
	}
	tr, f, err := Unpack(loc.X, r.modes)
	if err != nil {
		return err
	}
	tr = tr.ZeroNyquist()
	lr, err := residual.Local(tr, r.sys, f, r.mean)
	if err != nil {
		return err
	}
	var grad []float64
	if loc.Gradient != nil {
		grad = make([]float64, len(loc.Gradient))
		copy(grad, loc.Gradient)
	}
	r.iter++
	snap := Snapshot{
		Iteration:      r.iter,
		Trajectory:     tr,
		Freq:           f,
		LocalResidual:  lr,
		GlobalResidual: loc.F,
		Gradient:       grad,
	}
	if !r.quiet {
		fmt.Fprintf(os.Stderr, "iter %4d  residual %.6e  freq %.6f\n", snap.Iteration, snap.GlobalResidual, snap.Freq)
	}
	if r.trace != nil {
		r.trace.Append(snap)
	}
	if r.observer != nil {
		r.observer(snap)
	}
	return nil
}
