package wrapper

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/magiconair/properties"
)

// PropertiesPath is where Gradle keeps the pinned distribution.
var PropertiesPath = filepath.Join("gradle", "wrapper", "gradle-wrapper.properties")

var distributionPattern = regexp.MustCompile(`gradle-([^/]+?)-(?:bin|all)\.zip$`)

// CurrentVersion returns the Gradle version pinned by the wrapper in dir.
func CurrentVersion(dir string) (string, error) {
	path := filepath.Join(dir, PropertiesPath)
	props, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	url, ok := props.Get("distributionUrl")
	if !ok {
		return "", fmt.Errorf("%s has no distributionUrl", path)
	}

	return VersionFromDistributionURL(url)
}

// VersionFromDistributionURL extracts "8.5" from ".../gradle-8.5-bin.zip".
func VersionFromDistributionURL(url string) (string, error) {
	m := distributionPattern.FindStringSubmatch(url)
	if m == nil {
		return "", fmt.Errorf("unrecognised distributionUrl %q", url)
	}
	return m[1], nil
}
