package try

// Fataler is something which can stop the program (or test) with error.
//
// *testing.T and *log.Logger are.
type Fataler interface {
	Fatal(...any)
}

// Either wraps a pair of (T, error) returned from a function.
//
// It is "ok" when error is nil. Otherwise, T value is meaningless.
type Either[T any] interface {
	// Get unwraps the pair.
	Get() (T, error)

	// OrFatal returns the value when ok. Otherwise, it calls ftl.Fatal(err).
	//
	// If ftl has "Helper()" (like *testing.T), it is called before Fatal.
	OrFatal(ftl Fataler) T

	// OrDefault returns the value when ok. Otherwise, it returns d.
	OrDefault(d T) T
}

// To wraps the result of a function.
//
//	value := try.To(strconv.Atoi("42")).OrFatal(t)
func To[T any](ok T, ng error) Either[T] {
	if ng == nil {
		return tryOk[T]{ok}
	}
	return tryNg[T]{ng}
}

// Map converts the value when the Either is ok.
func Map[T any, R any](try Either[T], mapper func(T) R) Either[R] {
	val, err := try.Get()
	if err != nil {
		return tryNg[R]{err}
	}
	return tryOk[R]{mapper(val)}
}

type tryOk[T any] struct {
	value T
}

type tryNg[T any] struct {
	err error
}

func (ok tryOk[T]) Get() (T, error) {
	return ok.value, nil
}

func (ng tryNg[T]) Get() (T, error) {
	return *new(T), ng.err
}

func (ok tryOk[T]) OrDefault(T) T {
	return ok.value
}

func (ng tryNg[T]) OrDefault(d T) T {
	return d
}

func (ok tryOk[T]) OrFatal(Fataler) T {
	return ok.value
}

func (ng tryNg[T]) OrFatal(ftl Fataler) T {
	if hlp, ok := ftl.(interface{ Helper() }); ok {
		hlp.Helper()
	}
	ftl.Fatal(ng.err)
	return *new(T)
}
