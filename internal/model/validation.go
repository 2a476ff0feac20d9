package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so the validator treats it
	// as a number instead of walking its unexported fields.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// Report fields by their JSON name.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	campos := make(map[string]string, len(ves))
	for _, fe := range ves {
		campos[fieldPath(fe)] = mensaje(fe)
	}
	return &ValidationError{Campos: campos}
}

// fieldPath drops the root struct name from the namespace:
// "Proveedor.condicionesPago.metodoPago" → "condicionesPago.metodoPago".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func mensaje(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es obligatorio"
	case "oneof":
		return fmt.Sprintf("'%v' no es un valor permitido (%s)", fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		return fmt.Sprintf("%v es menor que el mínimo permitido (%s)", fe.Value(), fe.Param())
	case "max":
		return fmt.Sprintf("%v es mayor que el máximo permitido (%s)", fe.Value(), fe.Param())
	default:
		return "no cumple la regla " + fe.Tag()
	}
}
