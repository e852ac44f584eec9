package kubernetes

import (
	"context"
	"fmt"
	"sort"
	"time"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/client-go/informers"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/cache"

	"github.com/hasirciogluhq/colorserver/cmd/color/internal/core"
)

const (
	LabelEnabled = "colorserver-enabled"
	LabelName    = "colorserver-name"

	// PortName selects the service port when a service exposes several.
	PortName = "color"
)

type K8sResolver struct {
	store       cache.Store
	serviceName string
}

// NewK8sResolver watches services in namespace ("" for all) and blocks until the
// informer cache is synced or ctx is done. serviceName, when set, must match the
// colorserver-name label.
func NewK8sResolver(ctx context.Context, clientset kubernetes.Interface, namespace, serviceName string) (*K8sResolver, error) {
	factory := informers.NewSharedInformerFactoryWithOptions(clientset, 10*time.Minute,
		informers.WithNamespace(namespace))
	serviceInformer := factory.Core().V1().Services().Informer()

	// Start the informer in the background; it stops with ctx
	factory.Start(ctx.Done())
	for typ, synced := range factory.WaitForCacheSync(ctx.Done()) {
		if !synced {
			return nil, fmt.Errorf("informer cache for %v did not sync", typ)
		}
	}

	return &K8sResolver{
		store:       serviceInformer.GetStore(),
		serviceName: serviceName,
	}, nil
}

func (r *K8sResolver) Resolve(ctx context.Context) (string, error) {
	var candidates []*corev1.Service
	for _, obj := range r.store.List() {
		svc, ok := obj.(*corev1.Service)
		if !ok {
			continue
		}
		labels := svc.Labels
		if labels[LabelEnabled] != "true" {
			continue
		}
		if r.serviceName != "" && labels[LabelName] != r.serviceName {
			continue
		}
		if servicePort(svc) == 0 {
			continue
		}
		candidates = append(candidates, svc)
	}

	if len(candidates) == 0 {
		return "", core.NewError(core.KindUnknownHost, "resolve",
			fmt.Errorf("no service labelled %s=true (name=%q)", LabelEnabled, r.serviceName))
	}

	// Stable choice when several services match
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Namespace != candidates[j].Namespace {
			return candidates[i].Namespace < candidates[j].Namespace
		}
		return candidates[i].Name < candidates[j].Name
	})
	svc := candidates[0]
	return fmt.Sprintf("%s.%s.svc.cluster.local:%d", svc.Name, svc.Namespace, servicePort(svc)), nil
}

func servicePort(svc *corev1.Service) int32 {
	for _, p := range svc.Spec.Ports {
		if p.Name == PortName {
			return p.Port
		}
	}
	if len(svc.Spec.Ports) > 0 {
		return svc.Spec.Ports[0].Port
	}
	return 0
}
