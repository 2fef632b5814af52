// Package pipeline describes chains of external commands as plain values.
//
// A Pipeline is either done (it holds a value), failed (it holds an error), or pending:
// it holds the argument list of the next command and a continuation that turns the
// command's standard output into the rest of the pipeline. Combinators only rearrange
// these values; nothing runs until a Driver interprets the chain.
package pipeline

// Unit is the result of pipelines run only for their side effects.
type Unit = struct{}

// Pipeline is a deferred computation producing a T.
type Pipeline[T any] struct {
	value T
	err   error
	args  []string
	next  func(lines []string) Pipeline[T]
}

// Pure lifts a known value. It never runs a command.
func Pure[T any](v T) Pipeline[T] {
	return Pipeline[T]{value: v}
}

// Fail returns a pipeline that stops with err when it is reached.
func Fail[T any](err error) Pipeline[T] {
	return Pipeline[T]{err: err}
}

// Command runs args and resolves to the lines of its standard output.
func Command(args ...string) Pipeline[[]string] {
	return Pipeline[[]string]{
		args: args,
		next: Pure[[]string],
	}
}

// Pending reports whether a command still has to run.
func (p Pipeline[T]) Pending() bool {
	return p.err == nil && p.next != nil
}

// Args returns the argument list of the next command, or nil when nothing is pending.
func (p Pipeline[T]) Args() []string {
	if !p.Pending() {
		return nil
	}
	return p.args
}

// Resume feeds the output of the pending command to its continuation.
// Resuming a pipeline that is not pending returns it unchanged.
func (p Pipeline[T]) Resume(lines []string) Pipeline[T] {
	if !p.Pending() {
		return p
	}
	return p.next(lines)
}

// Result returns the final value or error of a pipeline that is no longer pending.
func (p Pipeline[T]) Result() (T, error) {
	return p.value, p.err
}

// Bind chains f after p: once p resolves, its value picks the next pipeline.
// This is the only place where later commands can depend on earlier output.
func Bind[T, U any](p Pipeline[T], f func(T) Pipeline[U]) Pipeline[U] {
	switch {
	case p.err != nil:
		return Fail[U](p.err)
	case p.next == nil:
		return f(p.value)
	}

	next := p.next
	return Pipeline[U]{
		args: p.args,
		next: func(lines []string) Pipeline[U] {
			return Bind(next(lines), f)
		},
	}
}

// Map transforms the eventual value of p. The commands run are the same.
func Map[T, U any](p Pipeline[T], f func(T) U) Pipeline[U] {
	return Bind(p, func(v T) Pipeline[U] {
		return Pure(f(v))
	})
}

// Try transforms the eventual value of p with a step that may fail.
// A failure stops the pipeline before any later command runs.
func Try[T, U any](p Pipeline[T], f func(T) (U, error)) Pipeline[U] {
	return Bind(p, func(v T) Pipeline[U] {
		u, err := f(v)
		if err != nil {
			return Fail[U](err)
		}
		return Pure(u)
	})
}

// Sequence runs ps strictly in order and collects their values.
func Sequence[T any](ps []Pipeline[T]) Pipeline[[]T] {
	return sequenceFrom(ps, make([]T, 0, len(ps)))
}

func sequenceFrom[T any](ps []Pipeline[T], acc []T) Pipeline[[]T] {
	if len(ps) == 0 {
		return Pure(acc)
	}
	return Bind(ps[0], func(v T) Pipeline[[]T] {
		// Full slice expression: a pipeline value may be run more than once.
		return sequenceFrom(ps[1:], append(acc[:len(acc):len(acc)], v))
	})
}

// SequenceUnit runs ps strictly in order for their side effects.
func SequenceUnit[T any](ps []Pipeline[T]) Pipeline[Unit] {
	return Map(Sequence(ps), func([]T) Unit {
		return Unit{}
	})
}

// Discard drops the value of p.
func Discard[T any](p Pipeline[T]) Pipeline[Unit] {
	return Map(p, func(T) Unit {
		return Unit{}
	})
}
