package pipeline

import "testing"

func TestParseS3URL(t *testing.T) {
	cases := []struct {
		path       string
		bucket     string
		key        string
		ok         bool
	}{
		{"s3://bucket/key/nested", "bucket", "key/nested", true},
		{"s3://bucket", "bucket", "", true},
		{"/local/path", "", "", false},
		{"relative.txt", "", "", false},
	}

	for _, c := range cases {
		bucket, key, ok := parseS3URL(c.path)
		if ok != c.ok || bucket != c.bucket || key != c.key {
			t.Fatalf("parseS3URL(%q) = (%q, %q, %v), want (%q, %q, %v)",
				c.path, bucket, key, ok, c.bucket, c.key, c.ok)
		}
	}
}
