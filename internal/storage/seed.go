package storage

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/sevasetu/seva-backend/internal/models"
)

// Seed loads the seva catalog and the pincode reference table from flat JSON
// files into the store. Collections that already contain rows are left alone,
// so restarting against an existing database does not duplicate the catalog.
// Seva ids are assigned sequentially at catalog load.
func Seed(store Store, dir string) error {
	sevaCount, err := store.CountSevas()
	if err != nil {
		return fmt.Errorf("failed to count sevas: %w", err)
	}
	if sevaCount == 0 {
		var sevas []*models.Seva
		if err := readJSONFile(filepath.Join(dir, "sevas.json"), &sevas); err != nil {
			return err
		}
		for i, seva := range sevas {
			seva.ID = i + 1
			if _, err := store.CreateSeva(seva); err != nil {
				return fmt.Errorf("failed to seed seva %q: %w", seva.Code, err)
			}
		}
		log.Printf("🌱 Seeded %d sevas", len(sevas))
	}

	pincodeCount, err := store.CountPincodes()
	if err != nil {
		return fmt.Errorf("failed to count pincodes: %w", err)
	}
	if pincodeCount == 0 {
		var pincodes []*models.PincodeInfo
		if err := readJSONFile(filepath.Join(dir, "pincodes.json"), &pincodes); err != nil {
			return err
		}
		for _, info := range pincodes {
			if err := store.CreatePincode(info); err != nil {
				return fmt.Errorf("failed to seed pincode %q: %w", info.Pincode, err)
			}
		}
		log.Printf("🌱 Seeded %d pincodes", len(pincodes))
	}

	return nil
}

func readJSONFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
