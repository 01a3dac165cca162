package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

type snsPublisher interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSDispatcher publishes events to an SNS topic with the event type as a
// message attribute for subscription filtering.
type SNSDispatcher struct {
	client   snsPublisher
	topicARN string
}

func NewSNSDispatcher(ctx context.Context, region, topicARN string) (*SNSDispatcher, error) {
	opts := []func(*config.LoadOptions) error{}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &SNSDispatcher{client: sns.NewFromConfig(cfg), topicARN: topicARN}, nil
}

func (d *SNSDispatcher) Dispatch(ctx context.Context, evt Event) error {
	payload, err := evt.Payload()
	if err != nil {
		return err
	}
	_, err = d.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(d.topicARN),
		Message:  aws.String(string(payload)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"event_type": {DataType: aws.String("String"), StringValue: aws.String(string(evt.Type))},
		},
	})
	return err
}
