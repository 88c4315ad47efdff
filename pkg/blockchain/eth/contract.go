package eth

// ABI of the SimplrEvents contract, reduced to the methods the server calls.
// currentBatchId is the on-chain batch counter; addBatch anchors a merkle
// root together with the content address of the pinned leaf set.
const eventsContractABI = `[
	{
		"inputs": [],
		"name": "currentBatchId",
		"outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"inputs": [
			{"internalType": "bytes32", "name": "merkleRoot", "type": "bytes32"},
			{"internalType": "string", "name": "ipfsHash", "type": "string"}
		],
		"name": "addBatch",
		"outputs": [],
		"stateMutability": "payable",
		"type": "function"
	},
	{
		"inputs": [{"internalType": "address", "name": "minter", "type": "address"}],
		"name": "addNewMinter",
		"outputs": [],
		"stateMutability": "payable",
		"type": "function"
	}
]`
