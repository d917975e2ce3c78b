package memory

import (
	"context"
	"time"

	"ckad-trainer/internal/domain"
)

// DefaultBankID names the built-in bank.
const DefaultBankID = "ckad"

// StaticLoader is a loader backed by an in-memory map (built-in banks, tests).
type StaticLoader struct {
	banks map[string][]domain.Question
}

func NewStaticLoader(banks map[string][]domain.Question) *StaticLoader {
	return &StaticLoader{banks: banks}
}

func (l *StaticLoader) LoadQuestions(_ context.Context, bankID string) ([]domain.Question, error) {
	if questions, ok := l.banks[bankID]; ok {
		return cloneQuestions(questions), nil
	}
	return nil, domain.ErrBankNotFound
}

// DefaultBanks returns the built-in CKAD practice bank.
func DefaultBanks() map[string][]domain.Question {
	return map[string][]domain.Question{
		DefaultBankID: {
			{
				ID:     1,
				Prompt: "Create a Pod named 'nginx' using the nginx:1.14 image in the default namespace.",
				Hints: []string{
					"Use: kubectl run <pod-name> --image=<image>",
					"Full command: kubectl run nginx --image=nginx:1.14",
					"Reference: https://kubernetes.io/docs/reference/kubectl/generated/kubectl-run/",
				},
				Answer:    "kubectl run nginx --image=nginx:1.14",
				TimeLimit: 60 * time.Second,
			},
			{
				ID:     2,
				Prompt: "Create a deployment named 'web' with 3 replicas using the httpd:2.4 image and expose port 80.",
				Hints: []string{
					"Use kubectl create deployment, then kubectl set image, and kubectl expose",
					"Or use: kubectl create deployment web --image=httpd:2.4 --replicas=3",
					"Then: kubectl expose deployment web --port=80 --type=ClusterIP",
				},
				Answer:    "kubectl create deployment web --image=httpd:2.4 --replicas=3\nkubectl expose deployment web --port=80 --type=ClusterIP",
				TimeLimit: 120 * time.Second,
			},
			{
				ID:     3,
				Prompt: "Set resource requests and limits for a pod: request 256Mi memory and 100m CPU, limit 512Mi memory and 200m CPU.",
				Hints: []string{
					"Use resources.requests and resources.limits in the pod spec",
					"Memory is specified in Mi, CPU in m (millicores)",
					"Reference: https://kubernetes.io/docs/concepts/configuration/manage-resources-containers/",
				},
				Answer:    "resources:\n  requests:\n    memory: \"256Mi\"\n    cpu: \"100m\"\n  limits:\n    memory: \"512Mi\"\n    cpu: \"200m\"",
				TimeLimit: 90 * time.Second,
			},
			{
				ID:     4,
				Prompt: "Create a ConfigMap named 'app-config' with key 'database.url' and value 'postgres://db:5432'.",
				Hints: []string{
					"Use: kubectl create configmap <name> --from-literal=<key>=<value>",
					"Full command: kubectl create configmap app-config --from-literal=database.url=postgres://db:5432",
					"Reference: https://kubernetes.io/docs/concepts/configuration/configmap/",
				},
				Answer:    "kubectl create configmap app-config --from-literal=database.url=postgres://db:5432",
				TimeLimit: 60 * time.Second,
			},
			{
				ID:     5,
				Prompt: "Create a Secret named 'db-secret' with username 'admin' and password 'secret123'.",
				Hints: []string{
					"Use: kubectl create secret generic <name> --from-literal=<key>=<value>",
					"Full command: kubectl create secret generic db-secret --from-literal=username=admin --from-literal=password=secret123",
					"Reference: https://kubernetes.io/docs/concepts/configuration/secret/",
				},
				Answer:    "kubectl create secret generic db-secret --from-literal=username=admin --from-literal=password=secret123",
				TimeLimit: 75 * time.Second,
			},
		},
	}
}
