package lifecycle

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sam-zarila/essa-admin/internal/pkg/models"
)

// Alias candidate lists, in priority order. Intake revisions renamed fields
// several times without migrating old documents, so every logical attribute
// is resolved first-match-wins across all the names it has ever had.
var (
	IDAliases           = []string{"_id", "id", "loanId", "applicationId"}
	FirstNameAliases    = []string{"firstName", "applicantFirstName", "givenName", "fname"}
	SurnameAliases      = []string{"lastName", "surname", "applicantLastName", "familyName", "lname"}
	TitleAliases        = []string{"title", "applicantTitle", "salutation"}
	CombinedNameAliases = []string{"name", "fullName", "applicantName", "customerName"}
	MobileAliases       = []string{"mobile", "phone", "phoneNumber", "mobileNumber", "contact", "msisdn"}
	EmailAliases        = []string{"email", "emailAddress", "applicantEmail", "mail"}
	AreaAliases         = []string{"city", "area", "town", "village", "district", "location"}
	AmountAliases       = []string{"loanAmount", "amount", "principal", "amountRequested"}
	BalanceAliases      = []string{"currentBalance", "balance", "outstandingBalance", "remainingBalance", "amountDue"}
	PeriodAliases       = []string{"loanPeriod", "period", "term", "duration", "numberOfPayments"}
	FrequencyAliases    = []string{"paymentFrequency", "frequency", "repaymentFrequency", "paymentPlan"}
	StatusAliases       = []string{"status", "loanStatus", "state"}
	StartAliases        = []string{"timestamp", "createdAt", "startDate", "disbursedAt", "dateCreated", "created"}
	EndAliases          = []string{"endDate", "dueDate", "maturityDate", "deadline"}
	CollateralAliases   = []string{"collateral", "collateralItems", "items", "securities"}
	LoanTypeAliases     = []string{"loanType", "type", "product", "category"}
)

// Collateral item sub-field aliases.
var (
	CollateralLabelAliases = []string{"label", "name", "title", "model", "description"}
	CollateralValueAliases = []string{"value", "estimatedValue", "estValue", "amount", "price"}
	CollateralImageAliases = []string{"image", "imageUrl", "photo", "picture", "img"}
	CollateralImageArrays  = []string{"images", "photos", "pictures"}
)

// ResolveField walks the candidate names in order and returns the first
// value that is neither nil nor an empty string. Candidates may use dotted
// paths for nested lookup. A miss returns nil, never an error.
func ResolveField(doc models.RawDoc, candidates []string) interface{} {
	if doc == nil {
		return nil
	}
	for _, candidate := range candidates {
		v := lookupPath(doc, candidate)
		if isEmptyValue(v) {
			continue
		}
		return v
	}
	return nil
}

// ResolveString resolves a field and renders it as a string. Missing values
// come back as "".
func ResolveString(doc models.RawDoc, candidates []string) string {
	v := ResolveField(doc, candidates)
	return stringify(v)
}

// ResolveNumber resolves a field and coerces it to a float64. Missing or
// non-numeric values come back as 0.
func ResolveNumber(doc models.RawDoc, candidates []string) float64 {
	v := ResolveField(doc, candidates)
	n, ok := toFloat(v)
	if !ok {
		return 0
	}
	return n
}

// ResolveInt is ResolveNumber truncated to an int.
func ResolveInt(doc models.RawDoc, candidates []string) int {
	return int(ResolveNumber(doc, candidates))
}

// ResolveID renders the document key as a string, unwrapping ObjectIDs.
func ResolveID(doc models.RawDoc) string {
	v := ResolveField(doc, IDAliases)
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case nil:
		return ""
	default:
		return stringify(id)
	}
}

// ResolveName resolves first and last name. When no first/last alias is
// present but a combined name string is, the string is split on whitespace:
// every token but the last is the first name, the last token the surname.
func ResolveName(doc models.RawDoc) (first, last string) {
	first = ResolveString(doc, FirstNameAliases)
	last = ResolveString(doc, SurnameAliases)
	if first != "" || last != "" {
		return first, last
	}
	combined := strings.TrimSpace(ResolveString(doc, CombinedNameAliases))
	if combined == "" {
		return "", ""
	}
	tokens := strings.Fields(combined)
	if len(tokens) == 1 {
		return tokens[0], ""
	}
	return strings.Join(tokens[:len(tokens)-1], " "), tokens[len(tokens)-1]
}

func lookupPath(doc models.RawDoc, path string) interface{} {
	if !strings.Contains(path, ".") {
		return doc[path]
	}
	parts := strings.Split(path, ".")
	var current interface{} = doc
	for _, part := range parts {
		m, ok := asMap(current)
		if !ok {
			return nil
		}
		current = m[part]
	}
	return current
}

func asMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case bson.M:
		return map[string]interface{}(m), true
	case bson.D:
		out := make(map[string]interface{}, len(m))
		for _, e := range m {
			out[e.Key] = e.Value
		}
		return out, true
	default:
		return nil, false
	}
}

func asSlice(v interface{}) ([]interface{}, bool) {
	switch s := v.(type) {
	case []interface{}:
		return s, true
	case bson.A:
		return []interface{}(s), true
	case []models.RawDoc:
		out := make([]interface{}, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	default:
		return nil, false
	}
}

func isEmptyValue(v interface{}) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return true
	}
	return false
}

func stringify(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32)
	case int:
		return strconv.Itoa(s)
	case int32:
		return strconv.FormatInt(int64(s), 10)
	case int64:
		return strconv.FormatInt(s, 10)
	case bool:
		return strconv.FormatBool(s)
	default:
		return fmt.Sprintf("%v", s)
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case primitive.Decimal128:
		f, err := strconv.ParseFloat(n.String(), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
