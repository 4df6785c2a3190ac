package httpapi

import (
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/murkotick/catalog-service/internal/app/catalog/domain"
)

const (
	maxNameRunes        = 255
	maxDescriptionRunes = 4000
	maxBodyBytes        = 1 << 20
)

// decimalInput accepts a price as a JSON string ("9.99") or number (9.99).
// Numbers keep their literal text so no float rounding happens.
type decimalInput string

func (d *decimalInput) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*d = decimalInput(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*d = decimalInput(n.String())
	return nil
}

type createBody struct {
	Name         string        `json:"name"`
	LanguageCode string        `json:"languageCode"`
	Description  string        `json:"description"`
	Price        *decimalInput `json:"price"`
	CategoryID   string        `json:"categoryId"`
	ParentID     string        `json:"parentId"`
}

func (b *createBody) normalize() {
	b.Name = strings.TrimSpace(b.Name)
	b.LanguageCode = strings.TrimSpace(b.LanguageCode)
	b.Description = strings.TrimSpace(b.Description)
	b.CategoryID = strings.TrimSpace(b.CategoryID)
	b.ParentID = strings.TrimSpace(b.ParentID)
}

func (b createBody) validate(kind domain.Kind) error {
	priceRules := []validation.Rule{
		validation.Nil.ErrorObject(keyed(domain.ErrPriceNotAllowed)),
	}
	if kind.HasPrice() {
		priceRules = []validation.Rule{
			validation.Required.ErrorObject(keyed(domain.ErrPriceRequired)),
			validation.By(validPrice),
		}
	}
	return validation.ValidateStruct(&b,
		validation.Field(&b.Name,
			validation.Required.ErrorObject(keyed(domain.ErrNameRequired)),
			validation.RuneLength(0, maxNameRunes).ErrorObject(keyed(domain.ErrNameTooLong)),
		),
		validation.Field(&b.LanguageCode, languageRules()...),
		validation.Field(&b.Description,
			validation.RuneLength(0, maxDescriptionRunes).ErrorObject(keyed(domain.ErrDescriptionTooLong)),
		),
		validation.Field(&b.Price, priceRules...),
		validation.Field(&b.CategoryID,
			validation.When(kind == domain.KindProduct,
				validation.Required.ErrorObject(keyed(domain.ErrCategoryRequired))),
		),
	)
}

// parentID is the product's category or the category's parent. Categories
// also accept categoryId for clients that send one field for both kinds.
func (b createBody) parentID(kind domain.Kind) string {
	if kind == domain.KindCategory && b.ParentID != "" {
		return b.ParentID
	}
	return b.CategoryID
}

func (b createBody) price() *domain.Money {
	if b.Price == nil {
		return nil
	}
	m, err := domain.ParseMoney(string(*b.Price))
	if err != nil {
		return nil
	}
	return m
}

type translationBody struct {
	ID           string `json:"id"`
	LanguageCode string `json:"languageCode"`
	Name         string `json:"name"`
	Description  string `json:"description"`
}

func (b *translationBody) normalize() {
	b.ID = strings.TrimSpace(b.ID)
	b.LanguageCode = strings.TrimSpace(b.LanguageCode)
	b.Name = strings.TrimSpace(b.Name)
	b.Description = strings.TrimSpace(b.Description)
}

func (b translationBody) validate(pathID string) error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.ID, validation.By(func(v any) error {
			if v.(string) != pathID {
				return validation.NewError(KeyIDMismatch, "body id does not match the path id")
			}
			return nil
		})),
		validation.Field(&b.Name,
			validation.Required.ErrorObject(keyed(domain.ErrNameRequired)),
			validation.RuneLength(0, maxNameRunes).ErrorObject(keyed(domain.ErrNameTooLong)),
		),
		validation.Field(&b.LanguageCode, languageRules()...),
		validation.Field(&b.Description,
			validation.RuneLength(0, maxDescriptionRunes).ErrorObject(keyed(domain.ErrDescriptionTooLong)),
		),
	)
}

func languageRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.ErrorObject(keyed(domain.ErrLanguageCodeRequired)),
		validation.By(func(v any) error {
			s, _ := v.(string)
			if s == "" {
				return nil
			}
			if _, err := domain.NormalizeLanguageCode(s); err != nil {
				return keyed(domain.ErrLanguageCodeInvalid)
			}
			return nil
		}),
	}
}

func validPrice(v any) error {
	var raw string
	switch p := v.(type) {
	case *decimalInput:
		if p == nil {
			return nil
		}
		raw = string(*p)
	case decimalInput:
		raw = string(p)
	default:
		return nil
	}
	m, err := domain.ParseMoney(raw)
	if err != nil {
		return validation.NewError(KeyInvalidPrice, "price is not a decimal number")
	}
	if !m.IsPositive() {
		return keyed(domain.ErrPriceMustBePositive)
	}
	return nil
}

func keyed(de *domain.Error) validation.Error {
	return validation.NewError(de.Key, de.Error())
}

// validationKeys flattens ozzo field errors into stable keys ordered by
// field name. Anything that is not a field error is reported as invalidBody.
func validationKeys(err error) []string {
	var fields validation.Errors
	if !errors.As(err, &fields) {
		return []string{KeyInvalidBody}
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	keys := make([]string, 0, len(names))
	for _, name := range names {
		var ve validation.Error
		if errors.As(fields[name], &ve) {
			keys = append(keys, ve.Code())
			continue
		}
		keys = append(keys, KeyInvalidBody)
	}
	return keys
}

// intParam reads an optional integer query parameter; absent means zero.
func intParam(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	return n, err == nil
}

// priceParam reads an optional decimal query parameter.
func priceParam(raw string) (*domain.Money, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	m, err := domain.ParseMoney(raw)
	if err != nil || m.Cmp(domain.NewMoney(0, 1)) < 0 {
		return nil, false
	}
	return m, true
}
