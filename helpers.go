package swap

import (
	"reflect"

	"github.com/iov-one/swap/errors"
)

// assign sets the value of src to the value pointed by dst. dst must be a
// pointer to a type that src can be assigned to. A pointer src is
// dereferenced when dst points to the type of its element.
func assign(dst, src interface{}) error {
	if dst == nil || src == nil {
		return errors.Wrap(errors.ErrHuman, "destination and source must not be nil")
	}
	dv := reflect.ValueOf(dst)
	if dv.Kind() != reflect.Ptr || dv.IsNil() {
		return errors.Wrapf(errors.ErrHuman, "destination must be a non nil pointer, got %T", dst)
	}
	sv := reflect.ValueOf(src)
	if sv.Kind() == reflect.Ptr && !sv.Type().AssignableTo(dv.Elem().Type()) {
		if sv.IsNil() {
			return errors.Wrapf(errors.ErrHuman, "source must be a non nil pointer, got %T", src)
		}
		sv = sv.Elem()
	}
	if !sv.Type().AssignableTo(dv.Elem().Type()) {
		return errors.Wrapf(errors.ErrType, "cannot assign %T to %T", src, dst)
	}
	dv.Elem().Set(sv)
	return nil
}
