package database

import (
	"context"
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		want ErrorCategory
	}{
		{context.DeadlineExceeded, ErrTimeout},
		{errors.New("dial tcp: connection refused"), ErrUnreachable},
		{errors.New("dial tcp: lookup db.local: no such host"), ErrUnreachable},
		{errors.New("pq: password authentication failed for user"), ErrInvalidCredentials},
		{errors.New(`pq: relation "orders" does not exist`), ErrMissingSchema},
		{errors.New("pq: permission denied for table payments"), ErrPermissionDenied},
		{errors.New("i/o timeout"), ErrTimeout},
		{errors.New("tuhaf bir hata"), ErrUnknown},
	}
	for _, c := range cases {
		if got := Classify(c.err); got != c.want {
			t.Errorf("Classify(%v) = %s, beklenen %s", c.err, got, c.want)
		}
	}
	if got := Classify(nil); got != "" {
		t.Errorf("nil hata için boş kategori dönmeli, got %s", got)
	}
}

func TestDescribeHasMessageForEveryCategory(t *testing.T) {
	for _, cat := range []ErrorCategory{ErrTimeout, ErrUnreachable, ErrInvalidCredentials, ErrMissingSchema, ErrPermissionDenied, ErrUnknown} {
		if Describe(cat) == "" {
			t.Errorf("%s için açıklama boş", cat)
		}
	}
}
