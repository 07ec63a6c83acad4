package dbx

import (
	"fmt"
	"strconv"
)

// Uint64Arg renders v for a NUMERIC(20,0) parameter. database/sql drivers do
// not accept uint64 values above math.MaxInt64, so the value travels as text
// and the query casts it with $n::numeric.
func Uint64Arg(v uint64) string {
	return strconv.FormatUint(v, 10)
}

// NumericUint64 scans a NUMERIC column (selected as col::text) into *V.
type NumericUint64 struct {
	V *uint64
}

func (n NumericUint64) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case int64:
		if v < 0 {
			return fmt.Errorf("negative numeric %d", v)
		}
		*n.V = uint64(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into uint64", src)
	}

	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("parse numeric %q: %w", s, err)
	}
	*n.V = u
	return nil
}
