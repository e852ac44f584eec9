package factory

import (
	"context"
	"fmt"
	"os"

	"github.com/hasirciogluhq/colorserver/cmd/color/internal/config"
	"github.com/hasirciogluhq/colorserver/cmd/color/internal/core"
	"github.com/hasirciogluhq/colorserver/cmd/color/internal/discovery/kubernetes"
	"github.com/hasirciogluhq/colorserver/cmd/color/internal/discovery/memory"
	"github.com/hasirciogluhq/colorserver/cmd/color/internal/logger"

	k8s "k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// ResolverFactory creates server address resolvers based on configuration
type ResolverFactory struct {
	cfg *config.ClientConfig
}

// NewResolverFactory creates a new resolver factory
func NewResolverFactory(cfg *config.ClientConfig) *ResolverFactory {
	return &ResolverFactory{cfg: cfg}
}

// Create creates an address resolver based on configuration
func (f *ResolverFactory) Create(ctx context.Context) (core.AddressResolver, error) {
	switch f.cfg.DiscoveryMode {
	case config.DiscoveryStatic:
		return f.createStaticResolver()
	case config.DiscoveryKubernetes:
		return f.createKubernetesResolver(ctx)
	default:
		return nil, fmt.Errorf("unknown discovery mode: %s", f.cfg.DiscoveryMode)
	}
}

func (f *ResolverFactory) createStaticResolver() (core.AddressResolver, error) {
	logger.Debug("Creating static address resolver", "host", f.cfg.ServerHost, "port", f.cfg.ServerPort)

	resolver, err := memory.NewResolver(f.cfg.ServerHost, f.cfg.ServerPort)
	if err != nil {
		return nil, fmt.Errorf("failed to create static resolver: %w", err)
	}
	return resolver, nil
}

func (f *ResolverFactory) createKubernetesResolver(ctx context.Context) (core.AddressResolver, error) {
	logger.InfoContext(ctx, "Creating Kubernetes address resolver",
		"namespace", f.cfg.Namespace,
		"service", f.cfg.ServiceName,
		"kubeconfig", f.cfg.KubeConfigPath,
		"context", f.cfg.KubeContext)

	restConfig, err := f.restConfig()
	if err != nil {
		return nil, err
	}

	clientset, err := k8s.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	resolver, err := kubernetes.NewK8sResolver(ctx, clientset, f.cfg.Namespace, f.cfg.ServiceName)
	if err != nil {
		return nil, fmt.Errorf("failed to start kubernetes resolver: %w", err)
	}
	logger.InfoContext(ctx, "Kubernetes resolver created successfully")
	return resolver, nil
}

func (f *ResolverFactory) restConfig() (*rest.Config, error) {
	kubeconfig := f.cfg.KubeConfigPath
	if kubeconfig == "" {
		if home := os.Getenv("HOME"); home != "" {
			if _, err := os.Stat(home + "/.kube/config"); err == nil {
				kubeconfig = home + "/.kube/config"
			}
		}
	}

	configOverrides := &clientcmd.ConfigOverrides{}
	if f.cfg.KubeContext != "" {
		configOverrides.CurrentContext = f.cfg.KubeContext
	}

	// Try kubeconfig first, then in-cluster
	if kubeconfig != "" {
		restConfig, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
			&clientcmd.ClientConfigLoadingRules{ExplicitPath: kubeconfig},
			configOverrides,
		).ClientConfig()
		if err == nil {
			return restConfig, nil
		}
		logger.Warn("Failed to load kubeconfig, will try in-cluster config", "error", err)
	}

	restConfig, err := rest.InClusterConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to build kubernetes config (tried kubeconfig and in-cluster): %w", err)
	}
	return restConfig, nil
}
