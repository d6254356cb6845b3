package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/soldeapp/clientledger/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Parallel()
	d, err := domain.ParseDate("2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", d.String())

	_, err = domain.ParseDate("2024-1-5")
	assert.Error(t, err, "only the strict ISO layout is accepted")
	_, err = domain.ParseDate("not a date")
	assert.Error(t, err)
}

func TestDateOrdering(t *testing.T) {
	t.Parallel()
	a := domain.MustParseDate("2024-01-10")
	b := domain.MustParseDate("2024-01-15")
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 0, a.Compare(a))
	assert.True(t, a.Equal(a))
	assert.False(t, a.IsZero())
	assert.True(t, domain.Date{}.IsZero())
}

func TestDateJSONRoundTrip(t *testing.T) {
	t.Parallel()
	d := domain.MustParseDate("2024-01-15")
	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-15"`, string(raw))

	var back domain.Date
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, d, back)

	assert.Error(t, json.Unmarshal([]byte(`"2024/01/15"`), &back))
}
