package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeTextStripsHTML(t *testing.T) {
	assert.Equal(t, "monthly deposit", SanitizeText("monthly deposit"))
	assert.Equal(t, "", SanitizeText("<script>alert(1)</script>"))
	assert.Equal(t, "bonus", SanitizeText("<b>bonus</b>"))
}

func TestSanitizeForFormulaInjection(t *testing.T) {
	assert.Equal(t, "'=SUM(A1:A2)", SanitizeForFormulaInjection("=SUM(A1:A2)"))
	assert.Equal(t, "'@cmd", SanitizeForFormulaInjection("@cmd"))
	assert.Equal(t, "plain memo", SanitizeForFormulaInjection("plain memo"))
	assert.Equal(t, "", SanitizeForFormulaInjection(""))
}

func TestStripUnprintable(t *testing.T) {
	assert.Equal(t, "memo\twith\nwhitespace", StripUnprintable("memo\twith\nwhitespace"))
	assert.Equal(t, "clean", StripUnprintable("cl\x00ean\x07"))
}

func TestValidateStringHelpers(t *testing.T) {
	assert.NoError(t, ValidateStringNotEmpty("x", "Field"))
	assert.Error(t, ValidateStringNotEmpty("   ", "Field"))
	assert.NoError(t, ValidateStringMaxLength("short", 10, "Field"))
	assert.Error(t, ValidateStringMaxLength("toolongvalue", 5, "Field"))
}
