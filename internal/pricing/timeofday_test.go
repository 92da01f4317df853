package pricing

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	got, err := ParseTimeOfDay("09:05")
	require.NoError(t, err)
	require.Equal(t, TimeOfDay{Hour: 9, Minute: 5}, got)
	require.Equal(t, 545, got.Minutes())
	require.Equal(t, "09:05", got.String())

	got, err = ParseTimeOfDay("17:30:00")
	require.NoError(t, err)
	require.Equal(t, "17:30", got.String())

	for _, bad := range []string{"", "9", "24:00", "12:60", "ab:cd", "1:2:3:4", "09:00:zz", "09:00:61", "9:5", "9:05"} {
		_, err := ParseTimeOfDay(bad)
		require.ErrorIs(t, err, ErrInvalidTime, bad)
	}
}

func TestParseOptionalTimeOfDay(t *testing.T) {
	blank, spaces, set, bad := "", "  ", "18:45", "18:45:xx"

	for _, in := range []*string{nil, &blank, &spaces} {
		got, err := ParseOptionalTimeOfDay(in)
		require.NoError(t, err)
		require.Nil(t, got)
	}

	got, err := ParseOptionalTimeOfDay(&set)
	require.NoError(t, err)
	require.Equal(t, 1125, got.Minutes())

	_, err = ParseOptionalTimeOfDay(&bad)
	require.ErrorIs(t, err, ErrInvalidTime)
}

func TestFeeSettingsFromMap(t *testing.T) {
	values := map[string]decimal.Decimal{}
	for _, k := range SettingKeys {
		values[k] = decimal.NewFromInt(1)
	}
	values[SettingPickupFee] = decimal.RequireFromString("17.5")

	fees, err := FeeSettingsFromMap(values)
	require.NoError(t, err)
	require.Equal(t, "17.50", fees.PickupFee.StringFixed(2))

	delete(values, SettingDaycarePuppyFeeHoliday)
	_, err = FeeSettingsFromMap(values)
	require.ErrorIs(t, err, ErrFeeSettingMissing)
	require.Contains(t, err.Error(), SettingDaycarePuppyFeeHoliday)
}

func TestIsSettingKey(t *testing.T) {
	require.True(t, IsSettingKey(SettingDropoffFee))
	require.False(t, IsSettingKey("tax_rate"))
}

func TestTimeOfDay_JSON(t *testing.T) {
	var v struct {
		In  *TimeOfDay `json:"in"`
		Out *TimeOfDay `json:"out"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"in":"08:30","out":null}`), &v))
	require.NotNil(t, v.In)
	require.Nil(t, v.Out)
	require.Equal(t, 510, v.In.Minutes())

	b, err := json.Marshal(v)
	require.NoError(t, err)
	require.JSONEq(t, `{"in":"08:30","out":null}`, string(b))

	require.Error(t, json.Unmarshal([]byte(`{"in":"25:00"}`), &v))
}
