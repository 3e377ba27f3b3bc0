package iap

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/guregu/dynamo"
)

const (
	DefaultIosTableName = "iap_platform_ios"
	DefaultRegion       = "ap-northeast-1"
)

// InAppPlatformIOS is the shared secret registered for an app bundle
type InAppPlatformIOS struct {
	BundleID     string `dynamo:"bundleId"`
	SharedSecret string `dynamo:"sharedSecret"`
}

// IosSource lists the registered app bundles
type IosSource interface {
	GetIosList() ([]InAppPlatformIOS, error)
}

// DynamoIosSource reads the app bundles from a DynamoDB table
type DynamoIosSource struct {
	Table dynamo.Table
}

// DynamoConfig json configuration
type DynamoConfig struct {
	Region    string `json:"region" env:"IAP_AWS_REGION" envDefault:"ap-northeast-1"`
	TableName string `json:"table_name" env:"IAP_IOS_TABLE" envDefault:"iap_platform_ios"`
}

// NewDynamoIosSource opens the table described by the configuration
func NewDynamoIosSource(config DynamoConfig) (*DynamoIosSource, error) {
	if len(config.Region) == 0 {
		config.Region = DefaultRegion
	}
	if len(config.TableName) == 0 {
		config.TableName = DefaultIosTableName
	}

	sess, err := session.NewSession(&aws.Config{Region: aws.String(config.Region)})
	if err != nil {
		return nil, err
	}

	db := dynamo.New(sess)
	return &DynamoIosSource{Table: db.Table(config.TableName)}, nil
}

// GetIosList to fetch every shared secret for apple app store
func (source *DynamoIosSource) GetIosList() ([]InAppPlatformIOS, error) {
	var results []InAppPlatformIOS
	err := source.Table.Scan().All(&results)

	if err != nil {
		return nil, err
	}

	return results, nil
}
