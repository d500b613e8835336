package replay

import "github.com/invopop/jsonschema"

// Schema describes the replay file layout accepted by Load.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}
	schema := reflector.Reflect(new(File))
	schema.Title = "Territory match replay"
	schema.Description = "Recorded boards, production map and optional moves of one match"
	return schema
}
