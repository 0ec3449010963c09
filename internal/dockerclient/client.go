// Package dockerclient talks to the Docker Engine API directly for the
// housekeeping compose and wp-env don't cover.
package dockerclient

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/api/types/volume"
	"github.com/docker/go-sdk/client"

	"github.com/CA-CODE-Works/cawebenv/internal/logs"
)

// pruneAPI is the part of the Engine API Prune needs. client.SDKClient
// satisfies it.
type pruneAPI interface {
	ContainersPrune(ctx context.Context, pruneFilters filters.Args) (container.PruneReport, error)
	ImagesPrune(ctx context.Context, pruneFilters filters.Args) (image.PruneReport, error)
	VolumesPrune(ctx context.Context, pruneFilters filters.Args) (volume.PruneReport, error)
	NetworksPrune(ctx context.Context, pruneFilters filters.Args) (network.PruneReport, error)
}

type DockerClient struct {
	client pruneAPI
}

func NewDockerClient(ctx context.Context) (*DockerClient, error) {
	c, err := client.New(
		ctx,
		client.WithLogger(slog.New(slog.NewTextHandler(logs.Writer(), &slog.HandlerOptions{}))),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to docker: %w", err)
	}

	return &DockerClient{
		client: c,
	}, nil
}

// PruneReport sums what Prune removed.
type PruneReport struct {
	Containers     int
	Images         int
	Volumes        int
	Networks       int
	SpaceReclaimed uint64
}

func (r PruneReport) String() string {
	return fmt.Sprintf("removed %d containers, %d images, %d volumes, %d networks; reclaimed %s",
		r.Containers, r.Images, r.Volumes, r.Networks, humanBytes(r.SpaceReclaimed))
}

// Prune removes stopped containers, then every unused image, volume and
// network, like `docker system prune -af --volumes`.
func (dc *DockerClient) Prune(ctx context.Context) (PruneReport, error) {
	var report PruneReport

	containers, err := dc.client.ContainersPrune(ctx, filters.NewArgs())
	if err != nil {
		return report, fmt.Errorf("prune containers: %w", err)
	}
	report.Containers = len(containers.ContainersDeleted)
	report.SpaceReclaimed += containers.SpaceReclaimed

	images, err := dc.client.ImagesPrune(ctx, filters.NewArgs(filters.Arg("dangling", "false")))
	if err != nil {
		return report, fmt.Errorf("prune images: %w", err)
	}
	report.Images = len(images.ImagesDeleted)
	report.SpaceReclaimed += images.SpaceReclaimed

	volumes, err := dc.client.VolumesPrune(ctx, filters.NewArgs(filters.Arg("all", "true")))
	if err != nil {
		return report, fmt.Errorf("prune volumes: %w", err)
	}
	report.Volumes = len(volumes.VolumesDeleted)
	report.SpaceReclaimed += volumes.SpaceReclaimed

	networks, err := dc.client.NetworksPrune(ctx, filters.NewArgs())
	if err != nil {
		return report, fmt.Errorf("prune networks: %w", err)
	}
	report.Networks = len(networks.NetworksDeleted)

	logs.Debugf("docker prune: %s", report)
	return report, nil
}

func humanBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
