package indexer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/esenthil2018/whisper-assistant/internal/storage"
)

var (
	// os.environ["NAME"] reads fail hard when unset, so the variable is required.
	environIndexPattern = regexp.MustCompile(`os\.environ\[["'](\w+)["']\]`)
	environGetPattern   = regexp.MustCompile(`os\.environ\.get\(\s*["'](\w+)["']\s*(?:,\s*([^)]+))?\)`)
	getenvPattern       = regexp.MustCompile(`os\.getenv\(\s*["'](\w+)["']\s*(?:,\s*([^)]+))?\)`)
)

// ExtractEnvVariables scans Python source for environment variable reads.
// A variable is required when any read would fail without it: bracket access,
// or a get call with no default. Duplicate reads are merged, required winning.
func ExtractEnvVariables(source, filePath string) []storage.EnvVariable {
	byName := make(map[string]*storage.EnvVariable)
	var order []string

	record := func(name, defaultValue string, required bool) {
		envVar, ok := byName[name]
		if !ok {
			envVar = &storage.EnvVariable{
				Name:        name,
				Description: fmt.Sprintf("Referenced in %s", filePath),
			}
			byName[name] = envVar
			order = append(order, name)
		}
		if required {
			envVar.IsRequired = true
		}
		if envVar.DefaultValue == "" {
			envVar.DefaultValue = defaultValue
		}
	}

	for _, m := range environIndexPattern.FindAllStringSubmatch(source, -1) {
		record(m[1], "", true)
	}
	for _, pattern := range []*regexp.Regexp{environGetPattern, getenvPattern} {
		for _, m := range pattern.FindAllStringSubmatch(source, -1) {
			defaultValue := cleanDefault(m[2])
			record(m[1], defaultValue, defaultValue == "")
		}
	}

	result := make([]storage.EnvVariable, 0, len(order))
	for _, name := range order {
		result = append(result, *byName[name])
	}
	return result
}

// cleanDefault strips quotes from a literal default; None means no default.
func cleanDefault(raw string) string {
	v := strings.TrimSpace(raw)
	if v == "" || v == "None" {
		return ""
	}
	v = strings.Trim(v, `"'`)
	return v
}
