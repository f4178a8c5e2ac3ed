// Where: internal/tracking/dynamo.go
// What: DynamoDB-backed tracking store.
// Why: The studio mirrors tracking records into DynamoDB tables; map SDK items to rule structs.
package tracking

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoAPI is the slice of the DynamoDB client the store needs.
// *dynamodb.Client satisfies it.
type DynamoAPI interface {
	Scan(ctx context.Context, input *dynamodb.ScanInput, opts ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	GetItem(ctx context.Context, input *dynamodb.GetItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, input *dynamodb.UpdateItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// DynamoStore reads variable rules, projects, and tasks from DynamoDB
// tables. Filters are evaluated client-side: the rule set is small and the
// scope predicates (nil-means-all, nested OR groups) do not map onto
// DynamoDB filter expressions.
type DynamoStore struct {
	Client        DynamoAPI
	RulesTable    string
	ProjectsTable string
	TasksTable    string
	Warn          func(string)
}

func (s DynamoStore) warnf(format string, args ...any) {
	if s.Warn != nil {
		s.Warn(fmt.Sprintf(format, args...))
	}
}

// FindRules scans the rules table and returns the records matching the
// filter, ordered by record id. A record that fails to decode is logged
// and skipped; a failed scan is returned as an error.
func (s DynamoStore) FindRules(ctx context.Context, filter Filter) ([]VariableRule, error) {
	if s.Client == nil {
		return nil, fmt.Errorf("dynamodb client is nil")
	}

	var rules []VariableRule
	var startKey map[string]types.AttributeValue
	for {
		out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(s.RulesTable),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.RulesTable, err)
		}

		for _, item := range out.Items {
			rule, err := decodeRule(item)
			if err != nil {
				s.warnf("skipping malformed rule record: %v", err)
				continue
			}
			ok, err := filter.Matches(rule)
			if err != nil {
				return nil, fmt.Errorf("evaluate filter: %w", err)
			}
			if ok {
				rules = append(rules, rule)
			}
		}

		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	// Scan order is partition order; pin a stable evaluation order.
	sort.SliceStable(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })
	return rules, nil
}

// ProjectCode fetches a project's display code by id.
func (s DynamoStore) ProjectCode(ctx context.Context, projectID int) (string, error) {
	item, err := s.getByID(ctx, s.ProjectsTable, projectID)
	if err != nil {
		return "", err
	}
	code := itemString(item, "code")
	if code == "" {
		return "", fmt.Errorf("project %d has no code", projectID)
	}
	return code, nil
}

// TaskStatus fetches a task's current status.
func (s DynamoStore) TaskStatus(ctx context.Context, taskID int) (string, error) {
	item, err := s.getByID(ctx, s.TasksTable, taskID)
	if err != nil {
		return "", err
	}
	return itemString(item, "status"), nil
}

// SetTaskStatus updates a task's status field.
func (s DynamoStore) SetTaskStatus(ctx context.Context, taskID int, status string) error {
	if s.Client == nil {
		return fmt.Errorf("dynamodb client is nil")
	}
	_, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.TasksTable),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberN{Value: strconv.Itoa(taskID)},
		},
		UpdateExpression: aws.String("SET #s = :status"),
		ExpressionAttributeNames: map[string]string{
			"#s": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: status},
		},
	})
	if err != nil {
		return fmt.Errorf("update task %d: %w", taskID, err)
	}
	return nil
}

func (s DynamoStore) getByID(ctx context.Context, table string, id int) (map[string]types.AttributeValue, error) {
	if s.Client == nil {
		return nil, fmt.Errorf("dynamodb client is nil")
	}
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberN{Value: strconv.Itoa(id)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get %s/%d: %w", table, id, err)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("%s/%d: %w", table, id, ErrNotFound)
	}
	return out.Item, nil
}

func decodeRule(item map[string]types.AttributeValue) (VariableRule, error) {
	id, err := itemInt(item, "id")
	if err != nil {
		return VariableRule{}, err
	}

	rule := VariableRule{
		ID:             id,
		Code:           itemString(item, "code"),
		Status:         itemString(item, "status"),
		MergeMethod:    itemString(item, "merge_method"),
		HostMinVersion: itemString(item, "host_min_version"),
		HostMaxVersion: itemString(item, "host_max_version"),
		EnvWindows:     itemString(item, "env_windows"),
		EnvLinux:       itemString(item, "env_linux"),
		EnvMac:         itemString(item, "env_mac"),
		HostEngines:    itemStringSet(item, "host_engines"),
	}

	for attr, dst := range map[string]*[]int{
		"projects":         &rule.Projects,
		"users":            &rule.Users,
		"exclude_projects": &rule.ExcludeProjects,
		"exclude_users":    &rule.ExcludeUsers,
	} {
		values, err := itemIntSet(item, attr)
		if err != nil {
			return VariableRule{}, fmt.Errorf("rule %d attribute %s: %w", id, attr, err)
		}
		*dst = values
	}

	return rule, nil
}

func itemString(item map[string]types.AttributeValue, attr string) string {
	if v, ok := item[attr].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

func itemInt(item map[string]types.AttributeValue, attr string) (int, error) {
	v, ok := item[attr].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("attribute %s is not a number", attr)
	}
	return strconv.Atoi(v.Value)
}

// itemIntSet decodes a numeric-set attribute. A missing attribute decodes
// to nil, which scope fields read as "all".
func itemIntSet(item map[string]types.AttributeValue, attr string) ([]int, error) {
	v, ok := item[attr].(*types.AttributeValueMemberNS)
	if !ok {
		return nil, nil
	}
	values := make([]int, 0, len(v.Value))
	for _, raw := range v.Value {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		values = append(values, n)
	}
	sort.Ints(values)
	return values, nil
}

func itemStringSet(item map[string]types.AttributeValue, attr string) []string {
	if v, ok := item[attr].(*types.AttributeValueMemberSS); ok {
		values := append([]string(nil), v.Value...)
		sort.Strings(values)
		return values
	}
	return nil
}
