/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGtsYAMLFileReader_SingleFile(t *testing.T) {
	tmpDir := t.TempDir()

	testFile := filepath.Join(tmpDir, "test.yaml")
	content := "gtsId: gts.vendor.package.namespace.type.v0\nname: Test Entity\n"
	require.NoError(t, os.WriteFile(testFile, []byte(content), 0644))

	reader := NewGtsYAMLFileReaderFromPath(testFile, nil)

	entity := reader.Next()
	require.NotNil(t, entity)
	require.NotNil(t, entity.GtsID)
	require.Equal(t, "gts.vendor.package.namespace.type.v0", entity.GtsID.ID)

	require.Nil(t, reader.Next())
}

func TestGtsYAMLFileReader_ArrayOfEntities(t *testing.T) {
	tmpDir := t.TempDir()

	testFile := filepath.Join(tmpDir, "test.yml")
	content := "" +
		"- gtsId: gts.vendor.package.namespace.type1.v0\n" +
		"- gtsId: gts.vendor.package.namespace.type2.v0\n"
	require.NoError(t, os.WriteFile(testFile, []byte(content), 0644))

	reader := NewGtsYAMLFileReaderFromPath(testFile, nil)

	var entities []*JsonEntity
	for {
		entity := reader.Next()
		if entity == nil {
			break
		}
		entities = append(entities, entity)
	}

	require.Len(t, entities, 2)
}

func TestGtsYAMLFileReader_IgnoresNonYAMLFiles(t *testing.T) {
	tmpDir := t.TempDir()

	jsonFile := filepath.Join(tmpDir, "entity.json")
	require.NoError(t, os.WriteFile(jsonFile, []byte(`{"gtsId":"gts.vendor.package.namespace.type.v0"}`), 0644))

	yamlFile := filepath.Join(tmpDir, "entity.yaml")
	require.NoError(t, os.WriteFile(yamlFile, []byte("gtsId: gts.vendor.package.namespace.type2.v0\n"), 0644))

	reader := NewGtsYAMLFileReaderFromPath(tmpDir, nil)

	var entities []*JsonEntity
	for {
		entity := reader.Next()
		if entity == nil {
			break
		}
		entities = append(entities, entity)
	}

	require.Len(t, entities, 1)
	require.Equal(t, "gts.vendor.package.namespace.type2.v0", entities[0].GtsID.ID)
}

func TestGtsYAMLFileReader_ReadByID(t *testing.T) {
	reader := NewGtsYAMLFileReaderFromPath(t.TempDir(), nil)
	require.Nil(t, reader.ReadByID("gts.vendor.package.namespace.type.v0"))
}
