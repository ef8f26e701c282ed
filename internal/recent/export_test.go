package recent

import "context"

// SetSchemaVersionForTest overwrites the recorded schema version.
func SetSchemaVersionForTest(s *Store, version int) error {
	return s.exec(context.Background(), "UPDATE schema_version SET version = ?", version)
}
