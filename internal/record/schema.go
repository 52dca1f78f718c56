package record

import "fmt"

// Kind is the declared value type of a field.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindUUID
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindUUID:
		return "uuid"
	case KindTime:
		return "time"
	default:
		return "unknown"
	}
}

// Field describes one field of T: its logical name, an optional column override,
// its declared kind and how to read it from a value.
// Value must return nil when the field is null.
type Field[T any] struct {
	Name     string
	Column   string
	Kind     Kind
	Nullable bool
	Value    func(T) any
}

// Key returns the external column name of the field.
func (f Field[T]) Key() string {
	return ColumnName(f.Name, f.Column)
}

// Schema is the static descriptor table of a type.
// New is the canonical constructor; it receives one argument per field, in field order,
// already coerced to the field's kind (nil for null).
type Schema[T any] struct {
	Type   string
	Fields []Field[T]
	New    func(args Args) (T, error)
}

// Columns returns the resolved column names in field order.
func (s Schema[T]) Columns() []string {
	cols := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		cols[i] = f.Key()
	}
	return cols
}

// ToRecord converts obj into a Record. Null fields are omitted.
func (s Schema[T]) ToRecord(obj T) Record {
	rec := make(Record, len(s.Fields))
	for _, f := range s.Fields {
		v := f.Value(obj)
		if v == nil {
			continue
		}
		rec[f.Key()] = v
	}
	return rec
}

// ToObject reconstructs a T from rec through the schema's constructor.
// Missing keys are passed as nil; a nil for a non-nullable field is a *ConstructionError
// and a value of the wrong type is a *TypeMismatchError.
func (s Schema[T]) ToObject(rec Record) (T, error) {
	var zero T
	if s.New == nil {
		return zero, &ConstructionError{Type: s.Type, Err: errNoConstructor}
	}

	args := newArgs(s.Fields)
	for i, f := range s.Fields {
		key := f.Key()
		raw := rec[key]
		if raw == nil {
			if !f.Nullable {
				return zero, &ConstructionError{Type: s.Type, Field: f.Name, Err: errRequiredNull}
			}
			continue
		}
		v, ok := coerce(f.Kind, raw)
		if !ok {
			return zero, &TypeMismatchError{Type: s.Type, Field: f.Name, Column: key, Kind: f.Kind, Value: raw}
		}
		args.vals[i] = v
	}

	obj, err := s.New(args)
	if err != nil {
		return zero, &ConstructionError{Type: s.Type, Err: err}
	}
	if bad := args.bad; bad.err != nil {
		return zero, &ConstructionError{Type: s.Type, Field: bad.field, Err: bad.err}
	}
	return obj, nil
}

// Args holds constructor arguments in field order.
// Reading an argument as a Go type it cannot be converted to fails the whole construction.
type Args struct {
	vals  []any
	names []string
	bad   *argFailure
}

type argFailure struct {
	field string
	err   error
}

func newArgs[T any](fields []Field[T]) Args {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return Args{vals: make([]any, len(fields)), names: names, bad: &argFailure{}}
}

// At returns the i-th argument, or nil when out of range.
func (a Args) At(i int) any {
	if i < 0 || i >= len(a.vals) {
		return nil
	}
	return a.vals[i]
}

// Len reports the number of arguments.
func (a Args) Len() int { return len(a.vals) }

// fail keeps the first conversion failure.
func (a Args) fail(i int, v any, want any) {
	if a.bad == nil || a.bad.err != nil {
		return
	}
	name := ""
	if i >= 0 && i < len(a.names) {
		name = a.names[i]
	}
	a.bad.field = name
	a.bad.err = fmt.Errorf("%w: argument %d is %T, read as %T", errArgType, i, v, want)
}

// Arg returns the i-th argument as V, or the zero value when it is nil.
// Integer and float arguments convert to narrower Go types when the value fits.
func Arg[V any](a Args, i int) V {
	raw := a.At(i)
	v, ok := as[V](raw)
	if !ok && raw != nil {
		a.fail(i, raw, v)
	}
	return v
}

// OptArg returns a pointer to the i-th argument, or nil when it is null.
func OptArg[V any](a Args, i int) *V {
	raw := a.At(i)
	if raw == nil {
		return nil
	}
	v, ok := as[V](raw)
	if !ok {
		a.fail(i, raw, v)
		return nil
	}
	return &v
}

// as converts a coerced value (int64, float64, ...) to V.
func as[V any](raw any) (V, bool) {
	if v, ok := raw.(V); ok {
		return v, true
	}

	var out V
	ok := false
	switch p := any(&out).(type) {
	case *int:
		ok = narrow(raw, p)
	case *int8:
		ok = narrow(raw, p)
	case *int16:
		ok = narrow(raw, p)
	case *int32:
		ok = narrow(raw, p)
	case *uint:
		ok = narrow(raw, p)
	case *uint8:
		ok = narrow(raw, p)
	case *uint16:
		ok = narrow(raw, p)
	case *uint32:
		ok = narrow(raw, p)
	case *uint64:
		ok = narrow(raw, p)
	case *float32:
		if f, isFloat := raw.(float64); isFloat {
			*p = float32(f)
			ok = true
		}
	}
	return out, ok
}

type narrowInt interface {
	~int | ~int8 | ~int16 | ~int32 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// narrow stores an int64 argument into *p when it fits.
func narrow[N narrowInt](raw any, p *N) bool {
	n, ok := raw.(int64)
	if !ok {
		return false
	}
	if n < 0 && N(0)-1 > 0 {
		return false
	}
	if int64(N(n)) != n {
		return false
	}
	*p = N(n)
	return true
}

// Opt dereferences p for use in a Field.Value func; a nil pointer yields a nil interface.
func Opt[V any](p *V) any {
	if p == nil {
		return nil
	}
	return *p
}
