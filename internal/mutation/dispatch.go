package mutation

import "pganonymize/internal/core"

// Generator produces a replacement COPY field value from the current
// mutation context.
type Generator func(c *Context) (string, error)

var generators = map[string]Generator{
	"first_name":                 FirstName,
	"last_name":                  LastName,
	"full_name":                  FullName,
	"middle_name":                MiddleName,
	"email":                      Email,
	"phone_number":               PhoneNumber,
	"address":                    Address,
	"deterministic_phone_number": DeterministicPhoneNumber,
	"smallint":                   Smallint,
	"integer":                    Integer,
	"bigint":                     Bigint,
	"smallserial":                Smallserial,
	"serial":                     Serial,
	"bigserial":                  Bigserial,
	"decimal":                    Decimal,
	"real":                       Real,
	"double_precision":           DoublePrecision,
	"date":                       Date,
	"uri":                        URI,
	"ipv4":                       IPv4,
	"ipv6":                       IPv6,
	"uuid4":                      UUID4,
	"uuid5_by_source_value":      UUID5BySourceValue,
	"null":                       Null,
	"empty_string":               EmptyString,
	"fixed_value":                FixedValue,
	"random_choice":              RandomChoice,
	"string_by_mask":             StringByMask,
}

// Dispatch looks up and runs the generator named by mutationName.
func Dispatch(mutationName string, c *Context) (string, error) {
	gen, ok := generators[mutationName]
	if !ok {
		return "", core.Wrapf(core.KindUnknownMutation, nil, "unknown mutation '%s'", mutationName)
	}
	return gen(c)
}
