package models

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrConstraintViolation is returned for every rejected write: missing or
// oversized fields, out of range ratings, bad money values, duplicate keys and
// dangling foreign keys.
var ErrConstraintViolation = errors.New("constraint violation")

const (
	MoneyDigits = 9
	MoneyPlaces = 2
)

// MaxMoney is the largest value a decimal(9,2) column holds.
var MaxMoney = decimal.New(1, MoneyDigits-MoneyPlaces).Sub(decimal.New(1, -MoneyPlaces))

var validate = newValidator()

// validate checks a model. With field names only those fields are checked.
func newValidator() func(interface{}, ...string) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})
	if err := v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		return ValidMoney(d)
	}); err != nil {
		panic(err)
	}

	return func(model interface{}, fields ...string) error {
		var err error
		if len(fields) > 0 {
			err = v.StructPartial(model, fields...)
		} else {
			err = v.Struct(model)
		}
		if err == nil {
			return nil
		}
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s failed on %q", ErrConstraintViolation, fe.StructNamespace(), fe.Tag())
		}
		return fmt.Errorf("%w: %v", ErrConstraintViolation, err)
	}
}

// ValidMoney reports whether d fits a decimal(9,2) column without rounding.
func ValidMoney(d decimal.Decimal) bool {
	if !d.Equal(d.Round(MoneyPlaces)) {
		return false
	}
	return d.Abs().LessThanOrEqual(MaxMoney)
}

// validateUpdate checks the values an update is about to write. Save and
// Updates(&model) write the model itself. Update and Updates with a map or
// another struct write only some columns; those are laid over a copy of the
// model and checked on their own, so rows loaded partially still pass.
func validateUpdate(tx *gorm.DB, model interface{}) error {
	stmt := tx.Statement
	if stmt.Schema == nil || stmt.Dest == model {
		return validate(model)
	}

	target := reflect.New(reflect.TypeOf(model).Elem())
	target.Elem().Set(reflect.ValueOf(model).Elem())
	var fields []string
	set := func(name string, value interface{}) error {
		field := stmt.Schema.LookUpField(name)
		if field == nil || field.PrimaryKey {
			return nil
		}
		switch value.(type) {
		case clause.Expr, *clause.Expr:
			return nil
		}
		if err := field.Set(stmt.Context, target, value); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrConstraintViolation, field.Name, err)
		}
		fields = append(fields, field.Name)
		return nil
	}

	switch dest := stmt.Dest.(type) {
	case map[string]interface{}:
		for name, value := range dest {
			if err := set(name, value); err != nil {
				return err
			}
		}
	default:
		destValue := reflect.Indirect(reflect.ValueOf(dest))
		if !destValue.IsValid() || destValue.Type() != target.Elem().Type() {
			return validate(model)
		}
		for _, field := range stmt.Schema.Fields {
			if field.DBName == "" {
				continue
			}
			value, zero := field.ValueOf(stmt.Context, destValue)
			if zero {
				continue
			}
			if err := set(field.Name, value); err != nil {
				return err
			}
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return validate(target.Interface(), fields...)
}
