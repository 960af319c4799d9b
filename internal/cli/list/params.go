package list

import (
	"entq/internal/cli/paramutils"
	"entq/internal/domain/entity"
)

type listCmdParams struct {
	Sort   entity.SortSpec
	Search string
	Watch  bool
}

func fillListCmdParams(flags paramutils.FlagRepo, params *listCmdParams) {
	params.Sort.Field = flags.GetStringOrDefault("sort", entity.DefaultSortField)
	params.Sort.Direction = entity.SortAsc
	if flags.GetBoolOrDefault("desc", false) {
		params.Sort.Direction = entity.SortDesc
	}
	params.Search = flags.GetStringOrDefault("search", "")
	params.Watch = flags.GetBoolOrDefault("watch", false)
}
