package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sevasJSON = `[
  {"code": "GANAPATHI_HOMAM", "title": "Ganapathi Homam", "discountedPrice": 1100, "marketPrice": 1500},
  {"code": "LAKSHMI_POOJA", "title": "Lakshmi Pooja", "discountedPrice": 900, "marketPrice": 1200}
]`

const pincodesJSON = `[
  {"pincode": "560001", "city": "Bengaluru", "district": "Bengaluru Urban", "state": "Karnataka", "country": "India"}
]`

func writeSeedDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sevas.json"), []byte(sevasJSON), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pincodes.json"), []byte(pincodesJSON), 0o644))
	return dir
}

func TestSeed(t *testing.T) {
	store := NewMemoryStore()
	dir := writeSeedDir(t)

	require.NoError(t, Seed(store, dir))

	sevas, err := store.ListSevas(1, 10)
	require.NoError(t, err)
	require.Len(t, sevas, 2)
	require.Equal(t, 1, sevas[0].ID)
	require.Equal(t, 2, sevas[1].ID)
	require.Equal(t, "GANAPATHI_HOMAM", sevas[0].Code)

	info, err := store.GetPincode("560001")
	require.NoError(t, err)
	require.Equal(t, "Karnataka", info.State)
}

func TestSeed_SkipsPopulatedCollections(t *testing.T) {
	store := NewMemoryStore()
	dir := writeSeedDir(t)

	require.NoError(t, Seed(store, dir))
	require.NoError(t, Seed(store, dir))

	count, err := store.CountSevas()
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	pincodes, err := store.CountPincodes()
	require.NoError(t, err)
	require.EqualValues(t, 1, pincodes)
}

func TestSeed_MissingFile(t *testing.T) {
	store := NewMemoryStore()

	err := Seed(store, t.TempDir())
	require.Error(t, err)
}
