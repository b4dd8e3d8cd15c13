package damage

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusUnmarshal(t *testing.T) {
	var st Status
	require.NoError(t, jsoniter.Unmarshal([]byte(`{}`), &st))
	st = st.WithDefaults()
	assertNear(t, "300", st.MainHandSkill)
	assertNear(t, "300", st.OffHandSkill)
	assertNear(t, "2.4", st.MainHandSpeed)
	assertNear(t, "1.8", st.OffHandSpeed)
	assertNear(t, "10", st.Hit)
	assertNear(t, "45", st.Crit)

	require.NoError(t, jsoniter.Unmarshal([]byte(`{"mh_skill":"305","hit":0,"crit":"12.5"}`), &st))
	st = st.WithDefaults()
	assertNear(t, "305", st.MainHandSkill)
	assertNear(t, "300", st.OffHandSkill)
	assertNear(t, "0", st.Hit)
	assertNear(t, "12.5", st.Crit)

	require.NoError(t, jsoniter.Unmarshal([]byte(`{"hit":null}`), &st))
	assertNear(t, "10", st.Hit)

	assert.Error(t, jsoniter.Unmarshal([]byte(`{"crit":"abc"}`), &st))
}
