package db

import "fmt"

// schemaTemplate defines the transcript chunk table. The HNSW dimension is
// filled in from the embedding configuration.
const schemaTemplate = `
    -- ==========================================================================
    -- CHUNK TABLE (timed transcript windows)
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS chunk SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS video_id ON chunk TYPE string;
    DEFINE FIELD IF NOT EXISTS content ON chunk TYPE string;
    DEFINE FIELD IF NOT EXISTS position ON chunk TYPE int;
    DEFINE FIELD IF NOT EXISTS start_time ON chunk TYPE option<float>;
    DEFINE FIELD IF NOT EXISTS end_time ON chunk TYPE option<float>;
    DEFINE FIELD IF NOT EXISTS embedding ON chunk TYPE array<float>;
    DEFINE FIELD IF NOT EXISTS created ON chunk TYPE datetime DEFAULT time::now();

    DEFINE INDEX IF NOT EXISTS chunk_video ON chunk FIELDS video_id;
    DEFINE INDEX IF NOT EXISTS chunk_embedding ON chunk FIELDS embedding HNSW DIMENSION %d DIST COSINE TYPE F32;
`

// SchemaSQL returns the schema initialization SQL for the given embedding dimension.
func SchemaSQL(dimension int) string {
	return fmt.Sprintf(schemaTemplate, dimension)
}
