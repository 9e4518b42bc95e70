package boot

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m4k3r-org/miniboot/components/firmware/fwimage"
	"github.com/m4k3r-org/miniboot/components/storage/steeprom"
)

func TestUpdateCheckerNewerImage(t *testing.T) {
	store := steeprom.NewTimestampStore(steeprom.NewMemoryDriver(16), steeprom.ConfigStart)
	store.Write(100)

	checker := NewUpdateChecker(store)
	require.True(t, checker.NeedUpdate(fwimage.Header{WrittenAt: 101}))
}

func TestUpdateCheckerSameImage(t *testing.T) {
	store := steeprom.NewTimestampStore(steeprom.NewMemoryDriver(16), steeprom.ConfigStart)
	store.Write(100)

	checker := NewUpdateChecker(store)
	require.False(t, checker.NeedUpdate(fwimage.Header{WrittenAt: 100}))
}

func TestUpdateCheckerOlderImage(t *testing.T) {
	store := steeprom.NewTimestampStore(steeprom.NewMemoryDriver(16), steeprom.ConfigStart)
	store.Write(100)

	checker := NewUpdateChecker(store)
	require.False(t, checker.NeedUpdate(fwimage.Header{WrittenAt: 99}))
}

func TestUpdateCheckerErasedMemory(t *testing.T) {
	// All cells erased: the persisted timestamp reads as the maximum value,
	// no image can be newer until the timestamp is explicitly written.
	store := steeprom.NewTimestampStore(steeprom.NewMemoryDriver(16), steeprom.ConfigStart)

	checker := NewUpdateChecker(store)
	require.False(t, checker.NeedUpdate(fwimage.Header{WrittenAt: 0xFFFFFFFE}))

	store.Write(0)
	require.True(t, checker.NeedUpdate(fwimage.Header{WrittenAt: 1}))
}
