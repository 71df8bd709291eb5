package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMintAndParseIntentRef(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	ref := MintIntentRef(12, 34, now)
	require.Equal(t, "CD_12_34_1700000000000", ref)

	intent, err := ParseIntentRef(ref)
	require.NoError(t, err)
	require.Equal(t, uint(12), intent.SwiperID)
	require.Equal(t, uint(34), intent.SwipedID)
}

func TestParseIntentRefRejectsMalformed(t *testing.T) {
	bad := []string{
		"",
		"CD",
		"CD_1_2",
		"XX_1_2_1700000000000",
		"CD_0_2_1700000000000",
		"CD_1_0_1700000000000",
		"CD_5_5_1700000000000",
		"CD_x_2_1700000000000",
		"CD_1_y_1700000000000",
	}
	for _, ref := range bad {
		_, err := ParseIntentRef(ref)
		require.ErrorIs(t, err, ErrInvalidIntentRef, "ref %q", ref)
	}
}

func TestParseIntentRefToleratesExtraSuffix(t *testing.T) {
	// Some providers append their own suffixes to the reference.
	intent, err := ParseIntentRef("CD_7_8_1700000000000_retry_1")
	require.NoError(t, err)
	require.Equal(t, uint(7), intent.SwiperID)
	require.Equal(t, uint(8), intent.SwipedID)
}
