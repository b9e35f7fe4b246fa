package headers

import (
	"reflect"
	"testing"
)

func TestParseHeaders(t *testing.T) {
	in := []string{"accept-language: en-IN", "Accept: text/html", "BadHeader", ": no-name", "X-Token: a:b", "accept: application/json"}
	out := ParseHeaders(in)
	expected := map[string]string{
		"Accept-Language": "en-IN",
		"Accept":          "application/json",
		"X-Token":         "a:b",
	}
	if !reflect.DeepEqual(out, expected) {
		t.Fatalf("unexpected parse result: %#v", out)
	}
}
