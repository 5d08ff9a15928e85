package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/rhajizada/loggy/internal/config"
)

func main() {
	s, err := jsonschema.For[config.Config](nil)
	if err != nil {
		log.Fatal(err)
	}

	s.Schema = "http://json-schema.org/draft-07/schema#"
	s.Title = "loggy config"

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		log.Fatal(err)
	}
}
