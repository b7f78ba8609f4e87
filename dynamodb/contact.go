package dynamodb

import (
	"context"
	"fmt"
	"strconv"

	"contactbook/contact"
	"contactbook/errs"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// counterID is the partition key of the id-counter item. It is not a
// stringified integer, so it can never collide with a record key.
const counterID = "seq"

// ContactRepository implements contact.Repository on a DynamoDB table whose
// string partition key "id" holds the stringified contact id. The counter is
// a number attribute on a reserved item, bumped with an atomic ADD update.
type ContactRepository struct {
	client *dynamodb.Client
	table  string
}

type contactItem struct {
	ID          string `dynamodbav:"id"`
	FirstName   string `dynamodbav:"first_name"`
	LastName    string `dynamodbav:"last_name"`
	Job         string `dynamodbav:"job"`
	Description string `dynamodbav:"description"`
}

func NewContactRepository(client *dynamodb.Client, table string) *ContactRepository {
	return &ContactRepository{
		client: client,
		table:  table,
	}
}

func itemKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func (r *ContactRepository) NextID(ctx context.Context) (int, error) {
	if err := validateTable(r.table); err != nil {
		return 0, err
	}

	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                aws.String(r.table),
		Key:                      itemKey(counterID),
		UpdateExpression:         aws.String("ADD #v :one"),
		ExpressionAttributeNames: map[string]string{"#v": "value"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, fmt.Errorf("dynamodb: bump id counter: %w", err)
	}

	n, ok := out.Attributes["value"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("dynamodb: id counter is not a number")
	}
	id, err := strconv.Atoi(n.Value)
	if err != nil {
		return 0, fmt.Errorf("dynamodb: parse id counter: %w", err)
	}
	return id, nil
}

func (r *ContactRepository) ListIDs(ctx context.Context) ([]int, error) {
	if err := validateTable(r.table); err != nil {
		return nil, err
	}

	ids := []int{}
	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName:                aws.String(r.table),
		ProjectionExpression:     aws.String("#id"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	})
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("dynamodb: scan contacts: %w", err)
		}
		for _, item := range out.Items {
			s, ok := item["id"].(*types.AttributeValueMemberS)
			if !ok {
				continue
			}
			id, err := strconv.Atoi(s.Value)
			if err != nil || id <= 0 {
				continue // the counter item, or a foreign item
			}
			ids = append(ids, id)
		}
	}

	return ids, nil
}

func (r *ContactRepository) GetContact(ctx context.Context, id int) (contact.Contact, error) {
	if err := validateTable(r.table); err != nil {
		return contact.Contact{}, err
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       itemKey(strconv.Itoa(id)),
	})
	if err != nil {
		return contact.Contact{}, fmt.Errorf("dynamodb: get contact %d: %w", id, err)
	}
	if len(out.Item) == 0 {
		return contact.Contact{}, errs.Errorf(errs.ENOTFOUND, "contact %d not found", id)
	}

	return decodeItem(out.Item, id)
}

func (r *ContactRepository) PutContact(ctx context.Context, c contact.Contact) error {
	if err := validateTable(r.table); err != nil {
		return err
	}

	av, err := attributevalue.MarshalMap(contactItem{
		ID:          strconv.Itoa(c.ID),
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Job:         c.Job,
		Description: c.Description,
	})
	if err != nil {
		return fmt.Errorf("dynamodb: marshal contact %d: %w", c.ID, err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("dynamodb: put contact %d: %w", c.ID, err)
	}

	return nil
}

// DeleteContact removes the item and returns its last value in one call via
// ReturnValues=ALL_OLD.
func (r *ContactRepository) DeleteContact(ctx context.Context, id int) (contact.Contact, error) {
	if err := validateTable(r.table); err != nil {
		return contact.Contact{}, err
	}

	out, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(r.table),
		Key:          itemKey(strconv.Itoa(id)),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return contact.Contact{}, fmt.Errorf("dynamodb: delete contact %d: %w", id, err)
	}
	if len(out.Attributes) == 0 {
		return contact.Contact{}, errs.Errorf(errs.ENOTFOUND, "contact %d not found", id)
	}

	return decodeItem(out.Attributes, id)
}

func decodeItem(av map[string]types.AttributeValue, id int) (contact.Contact, error) {
	var item contactItem
	if err := attributevalue.UnmarshalMap(av, &item); err != nil {
		return contact.Contact{}, fmt.Errorf("dynamodb: unmarshal contact %d: %w", id, err)
	}
	return contact.Contact{
		ID:          id,
		FirstName:   item.FirstName,
		LastName:    item.LastName,
		Job:         item.Job,
		Description: item.Description,
	}, nil
}
