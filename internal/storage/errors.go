package storage

import (
	"fmt"

	"github.com/fhuszti/resizer-ms-go/internal/usecase/session"
	"github.com/minio/minio-go/v7"
)

func mapMinioErr(err error) error {
	if err == nil {
		return nil
	}
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey":
		return session.ErrObjectNotFound
	case "NoSuchBucket":
		return session.ErrBucketNotFound
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return session.ErrUnauthorized
	default:
		return fmt.Errorf("%w: %v", session.ErrInternal, err)
	}
}
