package connect

import (
	"context"

	"github.com/VinukaThejana/go-utils/logger"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/notestack/auth/config"
)

// InitMinioClient is a function that is used to initialize minio client
func (c *Connector) InitMinioClient(env *config.Env) {
	useSSL := config.GetDevEnv(env) != config.Dev

	client, err := minio.New(env.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(env.MinioAPIKeyID, env.MinioAPIKeySecret, ""),
		Secure: useSSL,
	})
	if err != nil {
		logger.Errorf(err)
	}

	exists, err := client.BucketExists(context.Background(), env.MinioBucket)
	if err != nil {
		logger.Errorf(err)
	}
	if !exists {
		err = client.MakeBucket(context.Background(), env.MinioBucket, minio.MakeBucketOptions{})
		if err != nil {
			logger.Errorf(err)
		}
	}

	c.M = client
}
