package chrome

import (
	"fmt"
	"os"
	"strings"
)

// SearchToken is the placeholder in the search-engine template that gets
// replaced with the failed URL.
const SearchToken = "${}"

// Action is the Resolve verdict for a failed load.
type Action int

const (
	// ActionSubstitute retries with a search-engine query built from the
	// failed URL.
	ActionSubstitute Action = iota
	// ActionGoHome abandons the search chain and jumps to the local home
	// location. There is no further fallback beyond this.
	ActionGoHome
)

// Resolve decides the next step after a failed load. lastFallback is the
// substitute URL produced by the previous failure, or empty if the last
// failure was an ordinary page. When the fallback itself fails the chain
// ends at home, never a second substitution, so a broken search engine
// cannot loop forever. On ActionSubstitute the second return value is the
// URL to attempt; the caller must remember it as the new lastFallback.
func Resolve(failedURL, template, lastFallback string) (Action, string) {
	if failedURL != "" && failedURL == lastFallback {
		return ActionGoHome, ""
	}
	return ActionSubstitute, strings.ReplaceAll(template, SearchToken, failedURL)
}

// HomeURL returns the file:// URL of the user's home directory, the
// terminal link of the fallback chain. Failure here is the hard error of
// last resort: the caller must surface it, there is nothing left to try.
func HomeURL() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return "file://" + home, nil
}
