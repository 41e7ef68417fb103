package vns

var registrySignatures = []string{
	"setRecord(byte[32],address,uint64,uint64)void",
	"setSubnodeOwner(byte[32],byte[32],address)byte[32]",
	"setResolver(byte[32],uint64)void",
	"setOwner(byte[32],address)void",
	"setTTL(byte[32],uint64)void",
	"setApprovalForAll(address,bool)void",
	"ownerOf(byte[32])address",
	"resolver(byte[32])uint64",
	"ttl(byte[32])uint64",
	"recordExists(byte[32])bool",
	"isApprovedForAll(address,address)bool",
}

var resolverSignatures = []string{
	"text(byte[32],byte[22])byte[256]",
	"setText(byte[32],byte[22],byte[256])void",
	"name(byte[32])byte[256]",
	"setName(byte[32],byte[256])void",
	"deleteName(byte[32])void",
	"addr(byte[32])address",
	"setAddr(byte[32],address)void",
}

var registrarSignatures = []string{
	"register(byte[32],address,uint256)byte[32]",
	"renew(string,uint256)void",
	"reclaim(byte[32])void",
	"expiration(uint256)uint256",
	"is_expired(uint256)bool",
	"check_name(byte[32])bool",
	"get_length(byte[32])uint64",
	"get_price(byte[32],uint256)uint64",
	"nop()void",
	"arc72_ownerOf(uint256)address",
	"arc72_transferFrom(address,address,uint256)void",
}

var subRegistrarSignatures = []string{
	"register(byte[32],address,uint256)byte[32]",
	"check_name(byte[32])bool",
	"expiration(uint256)uint256",
	"nop()void",
	"arc72_ownerOf(uint256)address",
}

var rsvpSignatures = []string{
	"reserve(byte[32],byte[256],uint64)void",
	"release(byte[32])void",
	"admin_reserve(address,byte[32],byte[256],uint64,uint64)void",
	"reservation_owner(byte[32])address",
	"reservation_price(byte[32])uint64",
	"reservation_name(byte[32])byte[256]",
	"reservation_length(byte[32])uint64",
	"account_node(address)byte[32]",
}

var tokenSignatures = []string{
	"arc200_approve(address,uint256)bool",
	"arc200_transfer(address,uint256)bool",
	"arc200_balanceOf(address)uint256",
	"arc200_allowance(address,address)uint256",
}
