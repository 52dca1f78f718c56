package record

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// coerce converts a driver or caller supplied value to the canonical Go type of kind:
// string, int64, float64, bool, uuid.UUID or time.Time.
func coerce(kind Kind, v any) (any, bool) {
	switch kind {
	case KindString:
		return toString(v)
	case KindInt:
		return toInt(v)
	case KindFloat:
		return toFloat(v)
	case KindBool:
		b, ok := v.(bool)
		return b, ok
	case KindUUID:
		return toUUID(v)
	case KindTime:
		return toTime(v)
	}
	return nil, false
}

func toString(v any) (any, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case []byte:
		return string(x), true
	}
	return nil, false
}

func toInt(v any) (any, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint:
		if uint64(x) > math.MaxInt64 {
			return nil, false
		}
		return int64(x), true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		if x > math.MaxInt64 {
			return nil, false
		}
		return int64(x), true
	case float32:
		return floatToInt(float64(x))
	case float64:
		return floatToInt(x)
	}
	return nil, false
}

func floatToInt(f float64) (any, bool) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return nil, false
	}
	return int64(f), true
}

func toFloat(v any) (any, bool) {
	switch x := v.(type) {
	case float32:
		return float64(x), true
	case float64:
		return x, true
	}
	if i, ok := toInt(v); ok {
		return float64(i.(int64)), true
	}
	return nil, false
}

func toUUID(v any) (any, bool) {
	switch x := v.(type) {
	case uuid.UUID:
		return x, true
	case [16]byte:
		return uuid.UUID(x), true
	case string:
		id, err := uuid.Parse(x)
		return id, err == nil
	case []byte:
		if len(x) == 16 {
			id, err := uuid.FromBytes(x)
			return id, err == nil
		}
		id, err := uuid.ParseBytes(x)
		return id, err == nil
	}
	return nil, false
}

func toTime(v any) (any, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case string:
		t, err := time.Parse(time.RFC3339Nano, x)
		return t, err == nil
	}
	return nil, false
}
