package notify

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// SNSChannel publishes the message to an SNS topic whose subscribers include
// the operations mailbox. It is a broadcast fallback, not direct-to-recipient
// delivery, so it sits late in the chain.
type SNSChannel struct {
	client   *sns.Client
	topicARN string
}

func NewSNSChannel(ctx context.Context, region, topicARN string) (*SNSChannel, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SNSChannel{client: sns.NewFromConfig(awsCfg), topicARN: topicARN}, nil
}

func (c *SNSChannel) Name() string { return "sns" }

func (c *SNSChannel) Send(ctx context.Context, to, subject, body string) error {
	message := fmt.Sprintf("recipient: %s\n\n%s", to, body)
	_, err := c.client.Publish(ctx, &sns.PublishInput{
		TopicArn: &c.topicARN,
		Subject:  &subject,
		Message:  &message,
	})
	return err
}
