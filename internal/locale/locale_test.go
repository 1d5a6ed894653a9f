package locale

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate_AcceptsCommonTags(t *testing.T) {
	got, err := Validate([]string{"en", "zh", "pt-BR"}, true)
	require.NoError(t, err)
	require.Equal(t, []string{"en", "zh", "pt-BR"}, got)
}

func TestValidate_RejectsEmptyList(t *testing.T) {
	_, err := Validate(nil, false)
	require.Error(t, err)
}

func TestValidate_RejectsEmptyIdentifier(t *testing.T) {
	_, err := Validate([]string{"en", ""}, false)
	require.Error(t, err)
}

func TestValidate_RejectsPathTraversal(t *testing.T) {
	for _, bad := range []string{"..", "a/b", `a\b`, "."} {
		_, err := Validate([]string{bad}, false)
		require.Error(t, err, "identifier %q", bad)
	}
}

func TestValidate_RejectsDuplicates(t *testing.T) {
	_, err := Validate([]string{"en", "en"}, false)
	require.Error(t, err)
}

func TestValidate_StrictRejectsGarbage(t *testing.T) {
	_, err := Validate([]string{"not a tag"}, true)
	require.Error(t, err)
}

func TestValidate_LaxAcceptsOpaqueIdentifiers(t *testing.T) {
	got, err := Validate([]string{"internal-docs"}, false)
	require.NoError(t, err)
	require.Equal(t, []string{"internal-docs"}, got)
}

func TestCanonical(t *testing.T) {
	require.Equal(t, "en-US", Canonical("en-us"))
	require.Equal(t, "weird!!", Canonical("weird!!"))
}
